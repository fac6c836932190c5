package superfaktura

import (
	"net/url"
	"strconv"
)

// moduleName identifies this client to the API in the auth header.
const moduleName = "API-go"

// BuildAuthHeader derives the static Authorization header value from the
// credentials. The header is computed once per client and reused for every
// request; url.Values.Encode sorts keys, so the same inputs always produce a
// byte-identical header.
func BuildAuthHeader(email, apiKey string, companyID int) string {
	params := url.Values{}
	params.Set("email", email)
	params.Set("apikey", apiKey)
	params.Set("module", moduleName)
	if companyID > 0 {
		params.Set("company_id", strconv.Itoa(companyID))
	}
	return "SFAPI " + params.Encode()
}
