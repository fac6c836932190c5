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

const invoiceRecordJSON = `{
	"id": "456",
	"client_id": "123",
	"name": "2024-001",
	"type": "regular",
	"status": "1",
	"amount": "100.00",
	"vat": "20.00",
	"invoice_currency": "EUR",
	"home_currency": "EUR",
	"exchange_rate": 1,
	"created": "2024-03-01",
	"due": "2024-03-15",
	"modified": "2024-03-01 09:00:00"
}`

const invoiceItemRecordJSON = `{
	"id": "789",
	"invoice_id": "456",
	"name": "Consulting",
	"quantity": "2",
	"unit": "h",
	"unit_price": 50,
	"tax": 20,
	"discount": 0,
	"item_price": 100,
	"item_price_no_discount": 100,
	"item_price_vat": 120,
	"item_price_vat_no_discount": 120,
	"unit_price_vat": 60,
	"unit_price_vat_no_discount": 60,
	"unit_price_discount": 50
}`

func TestInvoicesCreate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}}`))
	})

	inv, err := client.Invoices.Create(context.Background(), InvoiceInput{
		Name:  "2024-001",
		Items: []InvoiceItemInput{{Name: strp("Consulting"), UnitPrice: decp("50"), Quantity: decp("2")}},
	}, ContactByID(123))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/invoices/create", gotPath)
	assert.JSONEq(t, `{
		"Invoice": {"name": "2024-001"},
		"InvoiceItem": [{"name": "Consulting", "unit_price": "50", "quantity": "2"}],
		"Client": {"id": 123}
	}`, string(gotBody))

	assert.Equal(t, "456", inv.ID)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Consulting", inv.Items[0].Name)
}

func TestInvoicesCreateWithInlineContact(t *testing.T) {
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}}`))
	})

	_, err := client.Invoices.Create(context.Background(), InvoiceInput{
		Name:  "2024-001",
		Items: []InvoiceItemInput{{Name: strp("Consulting"), UnitPrice: decp("50")}},
	}, ContactWith(ContactInput{Name: "ACME s.r.o."}))
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.JSONEq(t, `{"name":"ACME s.r.o."}`, string(body["Client"]))
}

func TestInvoicesCreateRejectsInvalidInput(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for invalid input")
	})

	_, err := client.Invoices.Create(context.Background(), InvoiceInput{Name: "2024-001"}, ContactByID(123))
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "invoice input", serr.Label)
}

func TestInvoicesGet(t *testing.T) {
	var gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		// View responses carry the record at the top level.
		w.Write([]byte(`{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}`))
	})

	inv, err := client.Invoices.Get(context.Background(), 456)
	require.NoError(t, err)
	assert.Equal(t, "/invoices/view/456.json", gotPath)
	assert.Equal(t, "456", inv.ID)
	assert.Equal(t, "120", inv.TotalWithVAT.String())
}

func TestInvoicesList(t *testing.T) {
	var gotURI string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{
			"items": [{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}],
			"itemCount": 1,
			"pageCount": 1,
			"page": 1,
			"perPage": 25
		}`))
	})

	result, err := client.Invoices.List(context.Background(), ListQuery{PerPage: 25})
	require.NoError(t, err)
	assert.Equal(t, "/invoices/index.json/listinfo%3A1/per_page%3A25", gotURI)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "2024-001", result.Items[0].Name)
	assert.Equal(t, 25, result.PerPage)
}

func TestInvoicesUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}}`))
	})

	_, err := client.Invoices.Update(context.Background(), 456, InvoicePatch{
		Comment: strp("updated"),
	}, nil)
	require.NoError(t, err)

	// The edit endpoint takes the id in the body, not the path.
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/invoices/edit", gotPath)
	assert.JSONEq(t, `{
		"Invoice": {"id": 456, "comment": "updated"},
		"InvoiceItem": [],
		"Client": {}
	}`, string(gotBody))
}

func TestInvoicesUpdateReplacesItems(t *testing.T) {
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{"Invoice":` + invoiceRecordJSON + `,"InvoiceItem":[` + invoiceItemRecordJSON + `]}}`))
	})

	_, err := client.Invoices.Update(context.Background(), 456, InvoicePatch{
		Items: []InvoiceItemInput{{Name: strp("Support"), UnitPrice: decp("80")}},
	}, nil)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.JSONEq(t, `[{"name":"Support","unit_price":"80"}]`, string(body["InvoiceItem"]))
}

func TestInvoicesDelete(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"error":0}`))
	})

	err := client.Invoices.Delete(context.Background(), 456)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/invoices/delete/456", gotPath)
}

func TestInvoicesPay(t *testing.T) {
	var gotURI string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"error":0,"data":{
			"created": "2024-04-01",
			"currency": "EUR",
			"exchange_rate": 1,
			"home_currency": "EUR",
			"invoice_currency": "EUR",
			"invoice_id": 456,
			"invoice_type": "regular",
			"overdue": false,
			"paid": 60,
			"payment_id": "321",
			"status": 2,
			"to_pay": 60,
			"to_pay_home_cur": 60
		}}`))
	})

	result, err := client.Invoices.Pay(context.Background(), 456, PaymentInput{Amount: decp("60")})
	require.NoError(t, err)

	assert.Equal(t, "/invoice_payments/add/ajax%3A1/api%3A1", gotURI)
	assert.JSONEq(t, `{"InvoicePayment":{"invoice_id":456,"amount":"60"}}`, string(gotBody))
	assert.Equal(t, 456, result.InvoiceID)
	assert.Equal(t, "321", result.PaymentID)
	assert.Equal(t, "60", result.Paid.String())
}

func TestInvoicesPayMissingRecord(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":0}`))
	})

	_, err := client.Invoices.Pay(context.Background(), 456, PaymentInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not contain a payment record")
}

func TestInvoicesMarkAsSent(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"error":0}`))
	})

	err := client.Invoices.MarkAsSent(context.Background(), 456)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/invoices/mark_sent/456", gotPath)
}

func TestInvoicesDownloadPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	var gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	})

	t.Run("explicit language", func(t *testing.T) {
		result, err := client.Invoices.DownloadPDF(context.Background(), 456, LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, "/eng/invoices/pdf/456", gotPath)
		assert.Equal(t, pdf, result.Data)
		assert.Equal(t, "application/pdf", result.ContentType)
	})

	t.Run("defaults to slovak", func(t *testing.T) {
		_, err := client.Invoices.DownloadPDF(context.Background(), 456, "")
		require.NoError(t, err)
		assert.Equal(t, "/slo/invoices/pdf/456", gotPath)
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		_, err := client.Invoices.DownloadPDF(context.Background(), 456, Language("en"))
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
	})
}

func TestInvoicesDownloadPDFNotFound(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Invoices.DownloadPDF(context.Background(), 999, LanguageSlovak)
	assert.ErrorIs(t, err, ErrNotFound)
}
