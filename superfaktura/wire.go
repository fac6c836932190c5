package superfaktura

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Inbound wire records. The API is loosely typed: most numbers arrive as
// strings, null and "" both mean "no value", and records are wrapped in
// envelopes keyed by the API's internal model names. Fields that must
// distinguish null from "" are pointers; everywhere else the two collapse.

type apiClient struct {
	ID                string  `json:"id" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	Ico               string  `json:"ico"`
	Dic               string  `json:"dic"`
	IcDph             string  `json:"ic_dph"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	Zip               string  `json:"zip"`
	State             string  `json:"state"`
	Country           string  `json:"country"`
	CountryID         *string `json:"country_id"`
	DeliveryName      string  `json:"delivery_name"`
	DeliveryAddress   string  `json:"delivery_address"`
	DeliveryCity      string  `json:"delivery_city"`
	DeliveryZip       string  `json:"delivery_zip"`
	DeliveryState     string  `json:"delivery_state"`
	DeliveryCountry   string  `json:"delivery_country"`
	DeliveryCountryID *string `json:"delivery_country_id"`
	DeliveryPhone     string  `json:"delivery_phone"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	Currency          string  `json:"currency" validate:"omitempty,currency"`
	DefaultVariable   string  `json:"default_variable"`
	Discount          *string `json:"discount"`
	DueDate           *string `json:"due_date"`
	BankAccount       string  `json:"bank_account"`
	BankAccountPrefix string  `json:"bank_account_prefix"`
	BankCode          string  `json:"bank_code"`
	Iban              string  `json:"iban"`
	Swift             string  `json:"swift"`
	Comment           string  `json:"comment"`
	UUID              string  `json:"uuid"`
	Created           string  `json:"created" validate:"required"`
	Modified          string  `json:"modified" validate:"required"`
}

type apiInvoice struct {
	ID                 string      `json:"id" validate:"required"`
	ClientID           string      `json:"client_id" validate:"required"`
	Name               string      `json:"name" validate:"required"`
	Type               string      `json:"type" validate:"required,invoice_type"`
	Status             string      `json:"status"`
	Flag               string      `json:"flag"`
	Amount             string      `json:"amount" validate:"required"`
	VAT                string      `json:"vat" validate:"required"`
	InvoiceCurrency    string      `json:"invoice_currency" validate:"required,currency"`
	HomeCurrency       string      `json:"home_currency" validate:"required,currency"`
	ExchangeRate       json.Number `json:"exchange_rate"`
	InvoiceNo          string      `json:"invoice_no"`
	InvoiceNoFormatted string      `json:"invoice_no_formatted"`
	Variable           string      `json:"variable"`
	Constant           string      `json:"constant"`
	Specific           string      `json:"specific"`
	Created            string      `json:"created" validate:"required"`
	Delivery           string      `json:"delivery"`
	Due                string      `json:"due" validate:"required"`
	PaymentType        string      `json:"payment_type" validate:"omitempty,payment_type"`
	HeaderComment      string      `json:"header_comment"`
	InternalComment    string      `json:"internal_comment"`
	Comment            string      `json:"comment"`
	Discount           string      `json:"discount"`
	Token              string      `json:"token"`
	Modified           string      `json:"modified" validate:"required"`
}

type apiInvoiceItem struct {
	ID                     string      `json:"id" validate:"required"`
	InvoiceID              string      `json:"invoice_id" validate:"required"`
	Name                   string      `json:"name" validate:"required"`
	Description            string      `json:"description"`
	Quantity               *string     `json:"quantity"`
	Unit                   string      `json:"unit"`
	UnitPrice              json.Number `json:"unit_price"`
	Tax                    json.Number `json:"tax"`
	Discount               json.Number `json:"discount"`
	ItemPrice              json.Number `json:"item_price"`
	ItemPriceNoDiscount    json.Number `json:"item_price_no_discount"`
	ItemPriceVAT           json.Number `json:"item_price_vat"`
	ItemPriceVATNoDiscount json.Number `json:"item_price_vat_no_discount"`
	UnitPriceVAT           json.Number `json:"unit_price_vat"`
	UnitPriceVATNoDiscount json.Number `json:"unit_price_vat_no_discount"`
	UnitPriceDiscount      json.Number `json:"unit_price_discount"`
	OrderNum               string      `json:"ordernum"`
}

type apiPayment struct {
	Created         string      `json:"created"`
	Currency        string      `json:"currency"`
	ExchangeRate    json.Number `json:"exchange_rate"`
	HomeCurrency    string      `json:"home_currency"`
	InvoiceCurrency string      `json:"invoice_currency"`
	InvoiceID       int         `json:"invoice_id"`
	InvoiceType     string      `json:"invoice_type"`
	Overdue         bool        `json:"overdue"`
	Paid            json.Number `json:"paid"`
	PaymentID       string      `json:"payment_id"`
	Status          int         `json:"status"`
	ToPay           json.Number `json:"to_pay"`
	ToPayHomeCur    json.Number `json:"to_pay_home_cur"`
}

// Envelope wrappers keyed by the API's model names.

type clientEnvelope struct {
	Client apiClient `json:"Client"`
}

type invoiceEnvelope struct {
	Invoice     apiInvoice       `json:"Invoice"`
	InvoiceItem []apiInvoiceItem `json:"InvoiceItem"`
}

// listEnvelope is the shape of index responses when listinfo is requested.
type listEnvelope[T any] struct {
	Items     []T `json:"items"`
	ItemCount int `json:"itemCount"`
	PageCount int `json:"pageCount"`
	Page      int `json:"page"`
	PerPage   int `json:"perPage"`
}

// Outbound payloads. Every field is a pointer with omitempty so that only
// fields the caller supplied are serialized; absence is never conflated with
// an explicit empty value. decimal fields marshal as strings, which the API
// stores verbatim.

type clientPayload struct {
	ID                *int             `json:"id,omitempty"`
	Name              *string          `json:"name,omitempty"`
	Ico               *string          `json:"ico,omitempty"`
	Dic               *string          `json:"dic,omitempty"`
	IcDph             *string          `json:"ic_dph,omitempty"`
	Address           *string          `json:"address,omitempty"`
	City              *string          `json:"city,omitempty"`
	Zip               *string          `json:"zip,omitempty"`
	State             *string          `json:"state,omitempty"`
	Country           *string          `json:"country,omitempty"`
	CountryID         *int             `json:"country_id,omitempty"`
	DeliveryName      *string          `json:"delivery_name,omitempty"`
	DeliveryAddress   *string          `json:"delivery_address,omitempty"`
	DeliveryCity      *string          `json:"delivery_city,omitempty"`
	DeliveryZip       *string          `json:"delivery_zip,omitempty"`
	DeliveryState     *string          `json:"delivery_state,omitempty"`
	DeliveryCountry   *string          `json:"delivery_country,omitempty"`
	DeliveryCountryID *int             `json:"delivery_country_id,omitempty"`
	DeliveryPhone     *string          `json:"delivery_phone,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	Email             *string          `json:"email,omitempty"`
	Currency          *string          `json:"currency,omitempty"`
	DefaultVariable   *string          `json:"default_variable,omitempty"`
	Discount          *decimal.Decimal `json:"discount,omitempty"`
	DueDate           *int             `json:"due_date,omitempty"`
	Iban              *string          `json:"iban,omitempty"`
	Comment           *string          `json:"comment,omitempty"`
	UUID              *string          `json:"uuid,omitempty"`
}

type invoicePayload struct {
	ID              *int             `json:"id,omitempty"`
	Name            *string          `json:"name,omitempty"`
	Type            *string          `json:"type,omitempty"`
	InvoiceCurrency *string          `json:"invoice_currency,omitempty"`
	Variable        *string          `json:"variable,omitempty"`
	Constant        *string          `json:"constant,omitempty"`
	Specific        *string          `json:"specific,omitempty"`
	Created         *string          `json:"created,omitempty"`
	Delivery        *string          `json:"delivery,omitempty"`
	Due             *string          `json:"due,omitempty"`
	PaymentType     *string          `json:"payment_type,omitempty"`
	HeaderComment   *string          `json:"header_comment,omitempty"`
	InternalComment *string          `json:"internal_comment,omitempty"`
	Comment         *string          `json:"comment,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	AlreadyPaid     *int             `json:"already_paid,omitempty"`
	MarkSent        *int             `json:"mark_sent,omitempty"`
}

type invoiceItemPayload struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
}

type paymentPayload struct {
	InvoiceID   int              `json:"invoice_id"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Date        *string          `json:"date,omitempty"`
	PaymentType *string          `json:"payment_type,omitempty"`
}

type contactBody struct {
	Client clientPayload `json:"Client"`
}

type invoiceBody struct {
	Invoice     invoicePayload       `json:"Invoice"`
	InvoiceItem []invoiceItemPayload `json:"InvoiceItem"`
	Client      clientPayload        `json:"Client"`
}

type paymentBody struct {
	InvoicePayment paymentPayload `json:"InvoicePayment"`
}
