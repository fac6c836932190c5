package superfaktura

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code from the closed set the API accepts.
type Currency string

// Currencies supported by the API.
const (
	CurrencyAUD Currency = "AUD"
	CurrencyBGN Currency = "BGN"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyCZK Currency = "CZK"
	CurrencyDKK Currency = "DKK"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyHRK Currency = "HRK"
	CurrencyHUF Currency = "HUF"
	CurrencyJPY Currency = "JPY"
	CurrencyNOK Currency = "NOK"
	CurrencyPLN Currency = "PLN"
	CurrencyRON Currency = "RON"
	CurrencyRUB Currency = "RUB"
	CurrencySEK Currency = "SEK"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = map[Currency]bool{
	CurrencyAUD: true, CurrencyBGN: true, CurrencyCAD: true, CurrencyCHF: true,
	CurrencyCNY: true, CurrencyCZK: true, CurrencyDKK: true, CurrencyEUR: true,
	CurrencyGBP: true, CurrencyHRK: true, CurrencyHUF: true, CurrencyJPY: true,
	CurrencyNOK: true, CurrencyPLN: true, CurrencyRON: true, CurrencyRUB: true,
	CurrencySEK: true, CurrencyUSD: true,
}

// IsValid reports whether the currency is in the accepted set.
func (c Currency) IsValid() bool { return validCurrencies[c] }

// Language is a three-letter document language code accepted by the PDF
// endpoint.
type Language string

// Languages supported for PDF rendering.
const (
	LanguageCzech     Language = "cze"
	LanguageGerman    Language = "deu"
	LanguageEnglish   Language = "eng"
	LanguageCroatian  Language = "hrv"
	LanguageHungarian Language = "hun"
	LanguageItalian   Language = "ita"
	LanguageDutch     Language = "nld"
	LanguagePolish    Language = "pol"
	LanguageRomanian  Language = "rom"
	LanguageRussian   Language = "rus"
	LanguageSlovak    Language = "slo"
	LanguageSlovene   Language = "slv"
	LanguageSpanish   Language = "spa"
	LanguageUkrainian Language = "ukr"
)

var validLanguages = map[Language]bool{
	LanguageCzech: true, LanguageGerman: true, LanguageEnglish: true,
	LanguageCroatian: true, LanguageHungarian: true, LanguageItalian: true,
	LanguageDutch: true, LanguagePolish: true, LanguageRomanian: true,
	LanguageRussian: true, LanguageSlovak: true, LanguageSlovene: true,
	LanguageSpanish: true, LanguageUkrainian: true,
}

// IsValid reports whether the language is in the accepted set.
func (l Language) IsValid() bool { return validLanguages[l] }

// InvoiceType distinguishes document kinds.
type InvoiceType string

// Invoice types.
const (
	InvoiceTypeRegular  InvoiceType = "regular"
	InvoiceTypeProforma InvoiceType = "proforma"
	InvoiceTypeCancel   InvoiceType = "cancel"
	InvoiceTypeEstimate InvoiceType = "estimate"
	InvoiceTypeOrder    InvoiceType = "order"
)

var validInvoiceTypes = map[InvoiceType]bool{
	InvoiceTypeRegular: true, InvoiceTypeProforma: true, InvoiceTypeCancel: true,
	InvoiceTypeEstimate: true, InvoiceTypeOrder: true,
}

// IsValid reports whether the invoice type is in the accepted set.
func (t InvoiceType) IsValid() bool { return validInvoiceTypes[t] }

// InvoiceStatus is the document lifecycle status as reported by the server.
// The wire carries it as a numeric code; unknown codes fall back to draft.
type InvoiceStatus string

// Invoice statuses.
const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// InvoiceFlag is the payment flag reported by the server. A missing flag
// defaults to issued.
type InvoiceFlag string

// Invoice flags.
const (
	InvoiceFlagIssued        InvoiceFlag = "issued"
	InvoiceFlagPartiallyPaid InvoiceFlag = "partially_paid"
	InvoiceFlagPaid          InvoiceFlag = "paid"
	InvoiceFlagOverdue       InvoiceFlag = "overdue"
)

var validInvoiceFlags = map[InvoiceFlag]bool{
	InvoiceFlagIssued: true, InvoiceFlagPartiallyPaid: true,
	InvoiceFlagPaid: true, InvoiceFlagOverdue: true,
}

// IsValid reports whether the flag is in the accepted set.
func (f InvoiceFlag) IsValid() bool { return validInvoiceFlags[f] }

// PaymentType is a payment method from the closed set the API accepts.
type PaymentType string

// Payment types.
const (
	PaymentTypeAccreditation PaymentType = "accreditation"
	PaymentTypeBarion        PaymentType = "barion"
	PaymentTypeBesteron      PaymentType = "besteron"
	PaymentTypeCash          PaymentType = "cash"
	PaymentTypeCard          PaymentType = "card"
	PaymentTypeCOD           PaymentType = "cod"
	PaymentTypeCredit        PaymentType = "credit"
	PaymentTypeDebit         PaymentType = "debit"
	PaymentTypeInkaso        PaymentType = "inkaso"
	PaymentTypeGoPay         PaymentType = "gopay"
	PaymentTypeOther         PaymentType = "other"
	PaymentTypePayPal        PaymentType = "paypal"
	PaymentTypeTransfer      PaymentType = "transfer"
	PaymentTypeTrustPay      PaymentType = "trustpay"
	PaymentTypeViamo         PaymentType = "viamo"
)

var validPaymentTypes = map[PaymentType]bool{
	PaymentTypeAccreditation: true, PaymentTypeBarion: true, PaymentTypeBesteron: true,
	PaymentTypeCash: true, PaymentTypeCard: true, PaymentTypeCOD: true,
	PaymentTypeCredit: true, PaymentTypeDebit: true, PaymentTypeInkaso: true,
	PaymentTypeGoPay: true, PaymentTypeOther: true, PaymentTypePayPal: true,
	PaymentTypeTransfer: true, PaymentTypeTrustPay: true, PaymentTypeViamo: true,
}

// IsValid reports whether the payment type is in the accepted set.
func (p PaymentType) IsValid() bool { return validPaymentTypes[p] }

// Contact is a customer record as returned by the API (the API's internal
// name for it is "Client"). Optional fields are nil when the API returned
// null or an empty string.
type Contact struct {
	ID                    string
	Name                  string
	ICO                   *string // company registration number
	DIC                   *string // tax ID
	ICDPH                 *string // VAT ID
	Address               *string
	City                  *string
	Zip                   *string
	State                 *string
	Country               *string
	CountryID             *string
	DeliveryName          *string
	DeliveryAddress       *string
	DeliveryCity          *string
	DeliveryZip           *string
	DeliveryState         *string
	DeliveryCountry       *string
	DeliveryCountryID     *string
	DeliveryPhone         *string
	Phone                 *string
	Email                 *string
	DefaultCurrency       *Currency
	DefaultVariableSymbol *string
	DefaultDiscount       *decimal.Decimal
	DefaultDueDays        *int
	BankAccount           *string
	BankAccountPrefix     *string
	BankCode              *string
	IBAN                  *string
	SWIFT                 *string
	Comment               *string
	UUID                  *string
	Created               time.Time
	Modified              time.Time
}

// ContactInput carries the fields accepted when creating a contact. Only
// non-nil fields are sent.
type ContactInput struct {
	Name                  string `validate:"required"`
	ICO                   *string
	DIC                   *string
	ICDPH                 *string
	Address               *string
	City                  *string
	Zip                   *string
	State                 *string
	Country               *string
	CountryID             *string `validate:"omitempty,number"`
	DeliveryName          *string
	DeliveryAddress       *string
	DeliveryCity          *string
	DeliveryZip           *string
	DeliveryState         *string
	DeliveryCountry       *string
	DeliveryCountryID     *string `validate:"omitempty,number"`
	DeliveryPhone         *string
	Phone                 *string
	Email                 *string   `validate:"omitempty,email"`
	DefaultCurrency       *Currency `validate:"omitempty,currency"`
	DefaultVariableSymbol *string
	DefaultDiscount       *decimal.Decimal
	DefaultDueDays        *int
	IBAN                  *string
	Comment               *string
	UUID                  *string
}

// ContactPatch is a partial update. Every field is optional; nil means
// "leave unchanged" and is never confused with an explicit empty value.
type ContactPatch struct {
	Name                  *string
	ICO                   *string
	DIC                   *string
	ICDPH                 *string
	Address               *string
	City                  *string
	Zip                   *string
	State                 *string
	Country               *string
	CountryID             *string `validate:"omitempty,number"`
	DeliveryName          *string
	DeliveryAddress       *string
	DeliveryCity          *string
	DeliveryZip           *string
	DeliveryState         *string
	DeliveryCountry       *string
	DeliveryCountryID     *string `validate:"omitempty,number"`
	DeliveryPhone         *string
	Phone                 *string
	Email                 *string   `validate:"omitempty,email"`
	DefaultCurrency       *Currency `validate:"omitempty,currency"`
	DefaultVariableSymbol *string
	DefaultDiscount       *decimal.Decimal
	DefaultDueDays        *int
	IBAN                  *string
	Comment               *string
	UUID                  *string
}

// InvoiceItem is a line item as returned by the API. The six computed price
// fields come from the server; the client never recomputes them.
type InvoiceItem struct {
	ID            string
	InvoiceID     string
	Name          string
	Description   *string
	Quantity      *decimal.Decimal
	UnitOfMeasure *string
	UnitPrice     decimal.Decimal // per unit, without VAT
	Tax           decimal.Decimal // VAT rate percentage
	Discount      decimal.Decimal // discount percentage

	// Computed by the server.
	ItemPrice                       decimal.Decimal
	ItemPriceWithoutDiscount        decimal.Decimal
	ItemPriceWithVAT                decimal.Decimal
	ItemPriceWithVATWithoutDiscount decimal.Decimal
	UnitPriceWithVAT                decimal.Decimal
	UnitPriceWithVATWithoutDiscount decimal.Decimal
	UnitPriceWithDiscount           decimal.Decimal

	OrderNumber string
}

// InvoiceItemInput carries the fields accepted for a line item. At least one
// of Name or UnitPrice must be set.
type InvoiceItemInput struct {
	Name          *string
	Description   *string
	Quantity      *decimal.Decimal
	UnitOfMeasure *string
	UnitPrice     *decimal.Decimal
	Tax           *decimal.Decimal
	Discount      *decimal.Decimal
}

// Invoice is a billing document as returned by the API.
type Invoice struct {
	ID                 string
	ClientID           string
	Name               string
	Type               InvoiceType
	Status             InvoiceStatus
	Flag               InvoiceFlag
	TotalWithoutVAT    decimal.Decimal
	TotalWithVAT       decimal.Decimal
	VAT                decimal.Decimal
	InvoiceCurrency    Currency
	HomeCurrency       Currency
	ExchangeRate       decimal.Decimal
	InvoiceNo          string
	InvoiceNoFormatted string
	VariableSymbol     *string
	ConstantSymbol     *string
	SpecificSymbol     *string
	Created            time.Time // issue date
	Modified           time.Time
	DeliveryDate       time.Time
	DueDate            time.Time
	PaymentType        *PaymentType
	HeaderComment      *string
	InternalComment    *string
	Comment            *string
	Discount           decimal.Decimal
	Token              string // public access token for online viewing
	Items              []InvoiceItem
}

// InvoiceInput carries the fields accepted when creating an invoice.
type InvoiceInput struct {
	Name              string
	Type              *InvoiceType `validate:"omitempty,invoice_type"`
	InvoiceCurrency   *Currency    `validate:"omitempty,currency"`
	VariableSymbol    *string
	ConstantSymbol    *string
	SpecificSymbol    *string
	Created           *time.Time // issue date
	DeliveryDate      *time.Time
	DueDate           *time.Time
	PaymentType       *PaymentType `validate:"omitempty,payment_type"`
	HeaderComment     *string
	InternalComment   *string
	Comment           *string
	Discount          *decimal.Decimal
	MarkAsAlreadyPaid bool
	MarkAsSent        bool
	Items             []InvoiceItemInput `validate:"min=1,dive"`
}

// InvoicePatch is a partial invoice update. Items replace the existing line
// items only when non-nil.
type InvoicePatch struct {
	Name            *string
	Type            *InvoiceType `validate:"omitempty,invoice_type"`
	InvoiceCurrency *Currency    `validate:"omitempty,currency"`
	VariableSymbol  *string
	ConstantSymbol  *string
	SpecificSymbol  *string
	Created         *time.Time
	DeliveryDate    *time.Time
	DueDate         *time.Time
	PaymentType     *PaymentType `validate:"omitempty,payment_type"`
	HeaderComment   *string
	InternalComment *string
	Comment         *string
	Discount        *decimal.Decimal
	Items           []InvoiceItemInput `validate:"omitempty,dive"`
}

// ContactRef identifies the contact an invoice belongs to: either a
// reference to an existing contact by ID, or a full contact input the server
// creates or merges inline.
type ContactRef struct {
	id    int
	input *ContactInput
}

// ContactByID references an existing contact.
func ContactByID(id int) ContactRef {
	return ContactRef{id: id}
}

// ContactWith sends a full contact input along with the invoice.
func ContactWith(input ContactInput) ContactRef {
	return ContactRef{input: &input}
}

// PaymentInput carries the fields accepted when recording a payment. A nil
// amount pays the invoice's full remaining total; a nil payment type
// defaults to transfer on the server.
type PaymentInput struct {
	Amount      *decimal.Decimal
	Currency    *Currency `validate:"omitempty,currency"`
	Date        *time.Time
	PaymentType *PaymentType `validate:"omitempty,payment_type"`
}

// PaymentResult summarizes the invoice state after a payment was recorded.
type PaymentResult struct {
	InvoiceID       int
	PaymentID       string
	Paid            decimal.Decimal
	ToPay           decimal.Decimal
	ToPayHome       decimal.Decimal
	Currency        string
	HomeCurrency    string
	InvoiceCurrency string
	ExchangeRate    decimal.Decimal
	InvoiceType     string
	Overdue         bool
	StatusCode      int // invoice status code after payment
}

// ListResult is one page of entities plus pagination metadata.
type ListResult[T any] struct {
	Items      []T
	Page       int
	PageCount  int
	ItemCount  int
	PerPage    int
	StatusCode int
}

// BinaryResult carries a downloaded file.
type BinaryResult struct {
	StatusCode  int
	Data        []byte
	ContentType string
}
