package superfaktura

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateContactInput(t *testing.T) {
	tests := []struct {
		name    string
		input   ContactInput
		wantErr string
	}{
		{
			name:  "minimal valid",
			input: ContactInput{Name: "ACME s.r.o."},
		},
		{
			name:    "missing name",
			input:   ContactInput{},
			wantErr: "Name: is required",
		},
		{
			name:    "bad email",
			input:   ContactInput{Name: "ACME", Email: strp("not-an-email")},
			wantErr: "Email: must be a valid email address",
		},
		{
			name:    "non-numeric country id",
			input:   ContactInput{Name: "ACME", CountryID: strp("Slovakia")},
			wantErr: "CountryID: must be numeric",
		},
		{
			name: "unsupported currency",
			input: ContactInput{
				Name:            "ACME",
				DefaultCurrency: func() *Currency { c := Currency("XXX"); return &c }(),
			},
			wantErr: `DefaultCurrency: unsupported currency "XXX"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateShape(tt.input, "contact input")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var serr *SchemaError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "contact input", serr.Label)
			assert.Contains(t, serr.Fields, tt.wantErr)
		})
	}
}

func TestValidateInvoiceInput(t *testing.T) {
	validItem := InvoiceItemInput{Name: strp("Consulting"), UnitPrice: decp("100")}

	t.Run("valid", func(t *testing.T) {
		err := validateShape(InvoiceInput{Name: "2024-001", Items: []InvoiceItemInput{validItem}}, "invoice input")
		assert.NoError(t, err)
	})

	t.Run("no items", func(t *testing.T) {
		err := validateShape(InvoiceInput{Name: "2024-001"}, "invoice input")
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Fields, "Items: must have at least 1 element(s)")
	})

	t.Run("item without name or unit price", func(t *testing.T) {
		err := validateShape(InvoiceInput{
			Name:  "2024-001",
			Items: []InvoiceItemInput{{Quantity: decp("2")}},
		}, "invoice input")
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Fields, "Items[0].Name: name or unit price must be set")
	})

	t.Run("item with only unit price is fine", func(t *testing.T) {
		err := validateShape(InvoiceInput{
			Name:  "2024-001",
			Items: []InvoiceItemInput{{UnitPrice: decp("9.99")}},
		}, "invoice input")
		assert.NoError(t, err)
	})

	t.Run("unsupported payment type", func(t *testing.T) {
		pt := PaymentType("bitcoin")
		err := validateShape(InvoiceInput{
			Name:        "2024-001",
			PaymentType: &pt,
			Items:       []InvoiceItemInput{validItem},
		}, "invoice input")
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Fields, `PaymentType: unsupported payment type "bitcoin"`)
	})
}

func TestSchemaErrorMessage(t *testing.T) {
	err := validateShape(ContactInput{Email: strp("nope")}, "contact input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact input failed validation")
	assert.Contains(t, err.Error(), "Name: is required")
	assert.Contains(t, err.Error(), "Email: must be a valid email address")
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CurrencyEUR.IsValid())
	assert.False(t, Currency("BTC").IsValid())
	assert.True(t, LanguageSlovak.IsValid())
	assert.False(t, Language("en").IsValid())
	assert.True(t, InvoiceTypeProforma.IsValid())
	assert.False(t, InvoiceType("receipt").IsValid())
	assert.True(t, PaymentTypeTransfer.IsValid())
	assert.False(t, PaymentType("iou").IsValid())
	assert.True(t, InvoiceFlagPartiallyPaid.IsValid())
	assert.False(t, InvoiceFlag("void").IsValid())
}
