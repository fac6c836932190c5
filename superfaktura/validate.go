package superfaktura

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// schemaValidator checks both untrusted caller input and records decoded
// from the API. The upstream is loosely typed, so responses get the same
// defensive treatment as input.
var schemaValidator = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New()

	enums := map[string]func(string) bool{
		"currency":     func(s string) bool { return Currency(s).IsValid() },
		"language":     func(s string) bool { return Language(s).IsValid() },
		"invoice_type": func(s string) bool { return InvoiceType(s).IsValid() },
		"payment_type": func(s string) bool { return PaymentType(s).IsValid() },
	}
	for tag, check := range enums {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}

	v.RegisterStructValidation(invoiceItemInputRules, InvoiceItemInput{})

	return v
}

// invoiceItemInputRules enforces that a line item names at least one of the
// two identifying fields.
func invoiceItemInputRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(InvoiceItemInput)
	if in.Name == nil && in.UnitPrice == nil {
		sl.ReportError(in.Name, "Name", "Name", "name_or_unit_price", "")
	}
}

// validateShape validates a value against its schema tags and returns a
// SchemaError with one "path: message" entry per violating field. The label
// names the value in error output ("contact input", "invoice record", ...).
func validateShape(value any, label string) error {
	err := schemaValidator.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("superfaktura: validate %s: %w", label, err)
	}

	seen := make(map[string]bool, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		entry := fieldPath(fe) + ": " + violationMessage(fe)
		if seen[entry] {
			continue
		}
		seen[entry] = true
		fields = append(fields, entry)
	}

	return &SchemaError{Label: label, Fields: fields}
}

// fieldPath strips the top-level struct name from the namespace, leaving
// "Items[0].Name" style paths.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "number":
		return "must be numeric"
	case "min":
		return fmt.Sprintf("must have at least %s element(s)", fe.Param())
	case "currency":
		return fmt.Sprintf("unsupported currency %q", fe.Value())
	case "language":
		return fmt.Sprintf("unsupported language %q", fe.Value())
	case "invoice_type":
		return fmt.Sprintf("unsupported invoice type %q", fe.Value())
	case "payment_type":
		return fmt.Sprintf("unsupported payment type %q", fe.Value())
	case "name_or_unit_price":
		return "name or unit price must be set"
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
