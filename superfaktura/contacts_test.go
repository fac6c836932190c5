package superfaktura

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactRecordJSON = `{
	"id": "123",
	"name": "ACME s.r.o.",
	"email": "billing@acme.example",
	"currency": "EUR",
	"created": "2024-01-15 10:30:00",
	"modified": "2024-02-01 08:00:00"
}`

func TestContactsCreate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Client":` + contactRecordJSON + `}}`))
	})

	contact, err := client.Contacts.Create(context.Background(), ContactInput{
		Name:  "ACME s.r.o.",
		Email: strp("billing@acme.example"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/clients/create", gotPath)
	assert.JSONEq(t, `{"Client":{"name":"ACME s.r.o.","email":"billing@acme.example"}}`, string(gotBody))

	assert.Equal(t, "123", contact.ID)
	assert.Equal(t, "ACME s.r.o.", contact.Name)
	require.NotNil(t, contact.Email)
	assert.Equal(t, "billing@acme.example", *contact.Email)
}

func TestContactsCreateRejectsInvalidInput(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for invalid input")
	})

	_, err := client.Contacts.Create(context.Background(), ContactInput{})
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "contact input", serr.Label)
}

func TestContactsGet(t *testing.T) {
	var gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		// View responses carry the record at the top level.
		w.Write([]byte(`{"Client":` + contactRecordJSON + `}`))
	})

	contact, err := client.Contacts.Get(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, "/clients/view/123", gotPath)
	assert.Equal(t, "123", contact.ID)
}

func TestContactsGetNotFound(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Contacts.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactsList(t *testing.T) {
	var gotURI string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{
			"items": [{"Client":` + contactRecordJSON + `}],
			"itemCount": 14,
			"pageCount": 2,
			"page": 2,
			"perPage": 10
		}`))
	})

	result, err := client.Contacts.List(context.Background(), ListQuery{Page: 2, PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, "/clients/index.json/listinfo%3A1/page%3A2/per_page%3A10", gotURI)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "ACME s.r.o.", result.Items[0].Name)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, 14, result.ItemCount)
	assert.Equal(t, 10, result.PerPage)
}

func TestContactsListEmptyQuery(t *testing.T) {
	var gotURI string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		// Metadata absent: defaults kick in.
		w.Write([]byte(`{"items":[{"Client":` + contactRecordJSON + `}]}`))
	})

	result, err := client.Contacts.List(context.Background(), ListQuery{})
	require.NoError(t, err)

	// An empty query still pins the first page so the index answers with a
	// record instead of a bare array.
	assert.Equal(t, "/clients/index.json/listinfo%3A1/page%3A1", gotURI)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, 1, result.ItemCount)
	assert.Equal(t, 1, result.PerPage)
}

func TestContactsListSearch(t *testing.T) {
	var gotURI string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{"items":[]}`))
	})

	result, err := client.Contacts.List(context.Background(), ListQuery{Search: "a b"})
	require.NoError(t, err)
	assert.Equal(t, "/clients/index.json/listinfo%3A1/search%3AYSBi", gotURI)
	assert.Empty(t, result.Items)
}

func TestContactsUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Client":` + contactRecordJSON + `}}`))
	})

	_, err := client.Contacts.Update(context.Background(), 123, ContactPatch{
		Email: strp("new@acme.example"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/clients/edit/123", gotPath)

	// Exactly the supplied field plus the id, nothing else.
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Equal(t, map[string]any{
		"id":    float64(123),
		"email": "new@acme.example",
	}, body["Client"])
}

func TestContactsDelete(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"error":0}`))
	})

	err := client.Contacts.Delete(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/clients/delete/123", gotPath)
}

func TestContactsCreateAPIRejection(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":1,"error_message":"Email address already in use"}`))
	})

	_, err := client.Contacts.Create(context.Background(), ContactInput{Name: "ACME"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Email address already in use"}, verr.Details)
}

func TestDecodeContactResponseMissingRecord(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":0,"data":{}}`))
	})

	_, err := client.Contacts.Get(context.Background(), 123)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not contain a Client record")
}
