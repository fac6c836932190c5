package superfaktura

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoInvoiceItems reports an invoice record that arrived without line
// items, which the API contract forbids.
var ErrNoInvoiceItems = errors.New("invoice record has no line items")

// invoiceStatusLookup maps the wire's numeric status codes to domain
// statuses. Codes the lookup does not know default to draft; the API grows
// codes over time and an unseen one must not break decoding.
var invoiceStatusLookup = map[string]InvoiceStatus{
	"1":  InvoiceStatusDraft,
	"2":  InvoiceStatusSent,
	"3":  InvoiceStatusOverdue,
	"99": InvoiceStatusPaid,
}

// invoiceItemFromAPI converts a decoded InvoiceItem record. The computed
// price fields are taken from the server as-is, never recomputed.
func invoiceItemFromAPI(raw apiInvoiceItem) (*InvoiceItem, error) {
	if err := validateShape(raw, "invoice item record"); err != nil {
		return nil, err
	}

	item := &InvoiceItem{
		ID:            raw.ID,
		InvoiceID:     raw.InvoiceID,
		Name:          raw.Name,
		Description:   emptyToNil(raw.Description),
		UnitOfMeasure: emptyToNil(raw.Unit),
		OrderNumber:   raw.OrderNum,
	}

	if raw.Quantity != nil && *raw.Quantity != "" {
		quantity, err := parseDecimalString(*raw.Quantity, "invoice item quantity")
		if err != nil {
			return nil, err
		}
		item.Quantity = &quantity
	}

	for _, field := range []struct {
		dst   *decimal.Decimal
		src   string
		label string
	}{
		{&item.UnitPrice, raw.UnitPrice.String(), "invoice item unit price"},
		{&item.Tax, raw.Tax.String(), "invoice item tax"},
		{&item.Discount, raw.Discount.String(), "invoice item discount"},
		{&item.ItemPrice, raw.ItemPrice.String(), "invoice item price"},
		{&item.ItemPriceWithoutDiscount, raw.ItemPriceNoDiscount.String(), "invoice item price without discount"},
		{&item.ItemPriceWithVAT, raw.ItemPriceVAT.String(), "invoice item price with VAT"},
		{&item.ItemPriceWithVATWithoutDiscount, raw.ItemPriceVATNoDiscount.String(), "invoice item price with VAT without discount"},
		{&item.UnitPriceWithVAT, raw.UnitPriceVAT.String(), "invoice item unit price with VAT"},
		{&item.UnitPriceWithVATWithoutDiscount, raw.UnitPriceVATNoDiscount.String(), "invoice item unit price with VAT without discount"},
		{&item.UnitPriceWithDiscount, raw.UnitPriceDiscount.String(), "invoice item unit price with discount"},
	} {
		if field.src == "" {
			continue
		}
		value, err := parseDecimalString(field.src, field.label)
		if err != nil {
			return nil, err
		}
		*field.dst = value
	}

	return item, nil
}

// invoiceFromAPI converts a decoded Invoice record plus its line items into
// the domain invoice.
func invoiceFromAPI(raw apiInvoice, rawItems []apiInvoiceItem) (*Invoice, error) {
	if err := validateShape(raw, "invoice record"); err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return nil, fmt.Errorf("superfaktura: invoice %s: %w", raw.ID, ErrNoInvoiceItems)
	}

	amount, err := parseDecimalString(raw.Amount, "invoice amount")
	if err != nil {
		return nil, err
	}
	vat, err := parseDecimalString(raw.VAT, "invoice vat")
	if err != nil {
		return nil, err
	}
	// Exchange rate is omitted for home-currency invoices, discount when
	// none applies.
	exchangeRate := decimal.NewFromInt(1)
	if raw.ExchangeRate != "" {
		exchangeRate, err = parseDecimalNumber(raw.ExchangeRate, "invoice exchange rate")
		if err != nil {
			return nil, err
		}
	}
	var discount decimal.Decimal
	if raw.Discount != "" {
		discount, err = parseDecimalString(raw.Discount, "invoice discount")
		if err != nil {
			return nil, err
		}
	}

	status, ok := invoiceStatusLookup[raw.Status]
	if !ok {
		status = InvoiceStatusDraft
	}

	flag := InvoiceFlagIssued
	if raw.Flag != "" {
		flag = InvoiceFlag(raw.Flag)
		if !flag.IsValid() {
			return nil, &SchemaError{
				Label:  "invoice record",
				Fields: []string{fmt.Sprintf("flag: unsupported flag %q", raw.Flag)},
			}
		}
	}

	created, err := parseWireTime(raw.Created, "invoice created")
	if err != nil {
		return nil, err
	}
	modified, err := parseWireTime(raw.Modified, "invoice modified")
	if err != nil {
		return nil, err
	}
	due, err := parseWireTime(raw.Due, "invoice due date")
	if err != nil {
		return nil, err
	}

	// The API omits the delivery date when it equals the issue date.
	delivery := created
	if raw.Delivery != "" {
		delivery, err = parseWireTime(raw.Delivery, "invoice delivery date")
		if err != nil {
			return nil, err
		}
	}

	inv := &Invoice{
		ID:                 raw.ID,
		ClientID:           raw.ClientID,
		Name:               raw.Name,
		Type:               InvoiceType(raw.Type),
		Status:             status,
		Flag:               flag,
		TotalWithoutVAT:    amount,
		TotalWithVAT:       amount.Add(vat),
		VAT:                vat,
		InvoiceCurrency:    Currency(raw.InvoiceCurrency),
		HomeCurrency:       Currency(raw.HomeCurrency),
		ExchangeRate:       exchangeRate,
		InvoiceNo:          raw.InvoiceNo,
		InvoiceNoFormatted: raw.InvoiceNoFormatted,
		VariableSymbol:     emptyToNil(raw.Variable),
		ConstantSymbol:     emptyToNil(raw.Constant),
		SpecificSymbol:     emptyToNil(raw.Specific),
		Created:            created,
		Modified:           modified,
		DeliveryDate:       delivery,
		DueDate:            due,
		HeaderComment:      emptyToNil(raw.HeaderComment),
		InternalComment:    emptyToNil(raw.InternalComment),
		Comment:            emptyToNil(raw.Comment),
		Discount:           discount,
		Token:              raw.Token,
	}

	if raw.PaymentType != "" {
		paymentType := PaymentType(raw.PaymentType)
		inv.PaymentType = &paymentType
	}

	inv.Items = make([]InvoiceItem, 0, len(rawItems))
	for _, rawItem := range rawItems {
		item, err := invoiceItemFromAPI(rawItem)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, *item)
	}

	return inv, nil
}

// itemInputToPayload builds the outbound InvoiceItem payload.
func itemInputToPayload(in InvoiceItemInput) invoiceItemPayload {
	return invoiceItemPayload{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Unit:        in.UnitOfMeasure,
		UnitPrice:   in.UnitPrice,
		Tax:         in.Tax,
		Discount:    in.Discount,
	}
}

// invoicePatchToPayload builds the outbound Invoice payload from a sparse
// patch: only supplied fields, dates formatted as YYYY-MM-DD.
func invoicePatchToPayload(p InvoicePatch) invoicePayload {
	return invoicePayload{
		Name:            p.Name,
		Type:            stringPtr(p.Type),
		InvoiceCurrency: stringPtr(p.InvoiceCurrency),
		Variable:        p.VariableSymbol,
		Constant:        p.ConstantSymbol,
		Specific:        p.SpecificSymbol,
		Created:         formatWireDatePtr(p.Created),
		Delivery:        formatWireDatePtr(p.DeliveryDate),
		Due:             formatWireDatePtr(p.DueDate),
		PaymentType:     stringPtr(p.PaymentType),
		HeaderComment:   p.HeaderComment,
		InternalComment: p.InternalComment,
		Comment:         p.Comment,
		Discount:        p.Discount,
	}
}

// wireTrue is the only truthy marker the API accepts on the paid/sent
// flags; a false flag is omitted entirely, never sent as 0.
var wireTrue = 1

// invoiceInputToPayload builds the outbound Invoice payload for a create.
func invoiceInputToPayload(in InvoiceInput) invoicePayload {
	payload := invoicePatchToPayload(InvoicePatch{
		Name:            &in.Name,
		Type:            in.Type,
		InvoiceCurrency: in.InvoiceCurrency,
		VariableSymbol:  in.VariableSymbol,
		ConstantSymbol:  in.ConstantSymbol,
		SpecificSymbol:  in.SpecificSymbol,
		Created:         in.Created,
		DeliveryDate:    in.DeliveryDate,
		DueDate:         in.DueDate,
		PaymentType:     in.PaymentType,
		HeaderComment:   in.HeaderComment,
		InternalComment: in.InternalComment,
		Comment:         in.Comment,
		Discount:        in.Discount,
	})

	if in.MarkAsAlreadyPaid {
		payload.AlreadyPaid = &wireTrue
	}
	if in.MarkAsSent {
		payload.MarkSent = &wireTrue
	}

	return payload
}

// contactRefToPayload resolves the invoice's contact parameter: a bare id
// for an existing contact, the full field set otherwise.
func contactRefToPayload(ref ContactRef) (clientPayload, error) {
	if ref.input != nil {
		if err := validateShape(*ref.input, "invoice contact input"); err != nil {
			return clientPayload{}, err
		}
		return contactInputToPayload(*ref.input)
	}
	id := ref.id
	return clientPayload{ID: &id}, nil
}

// paymentInputToPayload builds the outbound InvoicePayment payload. The
// invoice id comes from the path parameter, never from the input.
func paymentInputToPayload(invoiceID int, in PaymentInput) paymentPayload {
	return paymentPayload{
		InvoiceID:   invoiceID,
		Amount:      in.Amount,
		Currency:    stringPtr(in.Currency),
		Date:        formatWireDatePtr(in.Date),
		PaymentType: stringPtr(in.PaymentType),
	}
}

// paymentResultFromAPI converts the payment endpoint's response record.
func paymentResultFromAPI(raw apiPayment) (*PaymentResult, error) {
	paid, err := parseDecimalNumber(raw.Paid, "payment paid amount")
	if err != nil {
		return nil, err
	}
	toPay, err := parseDecimalNumber(raw.ToPay, "payment remaining amount")
	if err != nil {
		return nil, err
	}
	toPayHome, err := parseDecimalNumber(raw.ToPayHomeCur, "payment remaining amount in home currency")
	if err != nil {
		return nil, err
	}
	exchangeRate, err := parseDecimalNumber(raw.ExchangeRate, "payment exchange rate")
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		InvoiceID:       raw.InvoiceID,
		PaymentID:       raw.PaymentID,
		Paid:            paid,
		ToPay:           toPay,
		ToPayHome:       toPayHome,
		Currency:        raw.Currency,
		HomeCurrency:    raw.HomeCurrency,
		InvoiceCurrency: raw.InvoiceCurrency,
		ExchangeRate:    exchangeRate,
		InvoiceType:     raw.InvoiceType,
		Overdue:         raw.Overdue,
		StatusCode:      raw.Status,
	}, nil
}
