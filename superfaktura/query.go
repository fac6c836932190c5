package superfaktura

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
)

// ListQuery describes pagination and search parameters for list endpoints.
// Zero values mean "not set".
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
}

// base64url-like variant the API expects for search terms: standard base64
// with +, / and = replaced so the value survives inside a path segment.
var searchReplacer = strings.NewReplacer("+", "-", "/", "_", "=", ",")

func encodeSearch(search string) string {
	return searchReplacer.Replace(base64.StdEncoding.EncodeToString([]byte(search)))
}

// NamedQueryPath encodes a list query into the API's segment-based
// query-string substitute: each parameter becomes a "key%3Avalue" path
// segment, segments joined by "/". The fixed listinfo=1 segment requests
// pagination metadata and is included whenever any parameter is set. An empty
// query yields an empty string. Segment order is fixed (listinfo, page,
// per_page, search) so identical queries produce identical paths.
func NamedQueryPath(q ListQuery) string {
	if q.Page == 0 && q.PerPage == 0 && q.Search == "" {
		return ""
	}

	segments := []string{segment("listinfo", "1")}
	if q.Page > 0 {
		segments = append(segments, segment("page", strconv.Itoa(q.Page)))
	}
	if q.PerPage > 0 {
		segments = append(segments, segment("per_page", strconv.Itoa(q.PerPage)))
	}
	if q.Search != "" {
		segments = append(segments, segment("search", encodeSearch(q.Search)))
	}

	return strings.Join(segments, "/")
}

func segment(key, value string) string {
	return key + "%3A" + url.QueryEscape(value)
}
