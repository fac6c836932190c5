package superfaktura

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullAPIClient() apiClient {
	discount := "5.5"
	dueDate := "14"
	countryID := "191"
	return apiClient{
		ID:        "123",
		Name:      "ACME s.r.o.",
		Ico:       "12345678",
		Dic:       "2023456789",
		Address:   "Main 1",
		City:      "Bratislava",
		Zip:       "81101",
		CountryID: &countryID,
		Email:     "billing@acme.example",
		Currency:  "EUR",
		Discount:  &discount,
		DueDate:   &dueDate,
		Iban:      "SK3112000000198742637541",
		UUID:      "0c6f0f34-0a87-4d6c-91ab-2f20550fb383",
		Created:   "2024-01-15 10:30:00",
		Modified:  "2024-02-01",
	}
}

func TestContactFromAPI(t *testing.T) {
	contact, err := contactFromAPI(fullAPIClient())
	require.NoError(t, err)

	assert.Equal(t, "123", contact.ID)
	assert.Equal(t, "ACME s.r.o.", contact.Name)

	require.NotNil(t, contact.ICO)
	assert.Equal(t, "12345678", *contact.ICO)

	// Fields the API sent as "" come back nil, not pointers to "".
	assert.Nil(t, contact.Phone)
	assert.Nil(t, contact.Comment)
	assert.Nil(t, contact.DeliveryAddress)
	assert.Nil(t, contact.SWIFT)

	require.NotNil(t, contact.DefaultCurrency)
	assert.Equal(t, CurrencyEUR, *contact.DefaultCurrency)

	require.NotNil(t, contact.DefaultDiscount)
	assert.Equal(t, "5.5", contact.DefaultDiscount.String())

	require.NotNil(t, contact.DefaultDueDays)
	assert.Equal(t, 14, *contact.DefaultDueDays)

	assert.True(t, contact.Created.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))
	assert.True(t, contact.Modified.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestContactFromAPIRejectsBadRecords(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		raw := fullAPIClient()
		raw.Name = ""
		_, err := contactFromAPI(raw)
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "contact record", serr.Label)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		raw := fullAPIClient()
		raw.Currency = "XXX"
		_, err := contactFromAPI(raw)
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
	})

	t.Run("unparsable discount", func(t *testing.T) {
		raw := fullAPIClient()
		bad := "lots"
		raw.Discount = &bad
		_, err := contactFromAPI(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contact discount")
	})

	t.Run("unparsable created", func(t *testing.T) {
		raw := fullAPIClient()
		raw.Created = "last tuesday"
		_, err := contactFromAPI(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contact created")
	})
}

func TestContactPatchToPayloadSparse(t *testing.T) {
	payload, err := contactPatchToPayload(ContactPatch{
		Email:     strp("new@acme.example"),
		CountryID: strp("191"),
	})
	require.NoError(t, err)

	data, err := json.Marshal(contactBody{Client: payload})
	require.NoError(t, err)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	// Only the supplied fields cross the wire.
	assert.Equal(t, map[string]any{
		"email":      "new@acme.example",
		"country_id": float64(191),
	}, body["Client"])
}

func TestContactPatchToPayloadBadCountryID(t *testing.T) {
	_, err := contactPatchToPayload(ContactPatch{CountryID: strp("Slovakia")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "country id")
}

func TestContactInputToPayload(t *testing.T) {
	payload, err := contactInputToPayload(ContactInput{
		Name:  "ACME s.r.o.",
		Email: strp("billing@acme.example"),
	})
	require.NoError(t, err)

	require.NotNil(t, payload.Name)
	assert.Equal(t, "ACME s.r.o.", *payload.Name)
	require.NotNil(t, payload.Email)
	assert.Equal(t, "billing@acme.example", *payload.Email)
	assert.Nil(t, payload.ID)
	assert.Nil(t, payload.Phone)
}
