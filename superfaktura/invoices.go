package superfaktura

import (
	"context"
	"fmt"
	"net/http"
)

// payPath is the payment endpoint's fixed suffix; the API routes on the
// colon-encoded ajax and api markers.
const payPath = "/invoice_payments/add/ajax%3A1/api%3A1"

// InvoicesService manages billing documents. Status transitions are driven
// by the server: MarkAsSent and Pay are the only calls expected to move an
// invoice's status, and neither updates anything locally.
type InvoicesService struct {
	client *Client
}

// Create creates an invoice. The contact is either a reference to an
// existing contact or a full input the server creates or merges inline.
func (s *InvoicesService) Create(ctx context.Context, in InvoiceInput, contact ContactRef) (*Invoice, error) {
	if err := validateShape(in, "invoice input"); err != nil {
		return nil, err
	}
	contactPayload, err := contactRefToPayload(contact)
	if err != nil {
		return nil, err
	}

	body := invoiceBody{
		Invoice:     invoiceInputToPayload(in),
		InvoiceItem: make([]invoiceItemPayload, 0, len(in.Items)),
		Client:      contactPayload,
	}
	for _, item := range in.Items {
		body.InvoiceItem = append(body.InvoiceItem, itemInputToPayload(item))
	}

	resp, err := s.client.do(ctx, http.MethodPost, "/invoices/create", body)
	if err != nil {
		return nil, err
	}
	return decodeInvoiceResponse(resp)
}

// Get fetches an invoice with its line items.
func (s *InvoicesService) Get(ctx context.Context, id int) (*Invoice, error) {
	resp, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/view/%d.json", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeInvoiceResponse(resp)
}

// List fetches one page of invoices.
func (s *InvoicesService) List(ctx context.Context, q ListQuery) (*ListResult[Invoice], error) {
	resp, err := s.client.do(ctx, http.MethodGet, listPath("/invoices/index.json", q), nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope[invoiceEnvelope]
	if err := resp.decode(&env); err != nil {
		return nil, err
	}

	items := make([]Invoice, 0, len(env.Items))
	for _, wrapper := range env.Items {
		invoice, err := invoiceFromAPI(wrapper.Invoice, wrapper.InvoiceItem)
		if err != nil {
			return nil, err
		}
		items = append(items, *invoice)
	}

	return newListResult(items, env, resp.StatusCode), nil
}

// Update applies a partial patch. Line items are replaced only when the
// patch carries them; a nil contact leaves the invoice's contact alone.
func (s *InvoicesService) Update(ctx context.Context, id int, patch InvoicePatch, contact *ContactRef) (*Invoice, error) {
	if err := validateShape(patch, "invoice patch"); err != nil {
		return nil, err
	}

	payload := invoicePatchToPayload(patch)
	payload.ID = &id

	body := invoiceBody{
		Invoice:     payload,
		InvoiceItem: make([]invoiceItemPayload, 0, len(patch.Items)),
	}
	for _, item := range patch.Items {
		body.InvoiceItem = append(body.InvoiceItem, itemInputToPayload(item))
	}
	if contact != nil {
		contactPayload, err := contactRefToPayload(*contact)
		if err != nil {
			return nil, err
		}
		body.Client = contactPayload
	}

	resp, err := s.client.do(ctx, http.MethodPost, "/invoices/edit", body)
	if err != nil {
		return nil, err
	}
	return decodeInvoiceResponse(resp)
}

// Delete removes an invoice.
func (s *InvoicesService) Delete(ctx context.Context, id int) error {
	_, err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/invoices/delete/%d", id), nil)
	return err
}

// Pay records a payment against an invoice. A nil amount pays the full
// remaining total; the invoice id always comes from the path parameter.
func (s *InvoicesService) Pay(ctx context.Context, id int, in PaymentInput) (*PaymentResult, error) {
	if err := validateShape(in, "payment input"); err != nil {
		return nil, err
	}

	body := paymentBody{InvoicePayment: paymentInputToPayload(id, in)}
	resp, err := s.client.do(ctx, http.MethodPost, payPath, body)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data *apiPayment `json:"data"`
	}
	if err := resp.decode(&env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("superfaktura: payment response did not contain a payment record")
	}
	return paymentResultFromAPI(*env.Data)
}

// MarkAsSent flags an invoice as sent. A bare side-effecting GET with no
// body, per the API's convention.
func (s *InvoicesService) MarkAsSent(ctx context.Context, id int) error {
	_, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/mark_sent/%d", id), nil)
	return err
}

// DownloadPDF fetches the rendered invoice PDF in the given language. An
// empty language defaults to Slovak.
func (s *InvoicesService) DownloadPDF(ctx context.Context, id int, lang Language) (*BinaryResult, error) {
	if lang == "" {
		lang = LanguageSlovak
	}
	if !lang.IsValid() {
		return nil, &SchemaError{
			Label:  "pdf language",
			Fields: []string{fmt.Sprintf("language: unsupported language %q", lang)},
		}
	}
	return s.client.doBinary(ctx, http.MethodGet, fmt.Sprintf("/%s/invoices/pdf/%d", lang, id))
}

// decodeInvoiceResponse extracts the Invoice record and its items from
// either response shape (top-level for views, nested under "data" for
// mutations).
func decodeInvoiceResponse(resp *response) (*Invoice, error) {
	var env struct {
		Invoice     *apiInvoice      `json:"Invoice"`
		InvoiceItem []apiInvoiceItem `json:"InvoiceItem"`
		Data        *invoiceEnvelope `json:"data"`
	}
	if err := resp.decode(&env); err != nil {
		return nil, err
	}

	switch {
	case env.Data != nil && env.Data.Invoice.ID != "":
		return invoiceFromAPI(env.Data.Invoice, env.Data.InvoiceItem)
	case env.Invoice != nil:
		return invoiceFromAPI(*env.Invoice, env.InvoiceItem)
	default:
		return nil, fmt.Errorf("superfaktura: response did not contain an Invoice record")
	}
}
