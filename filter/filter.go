// Package filter compiles boolean expressions for narrowing down contact
// and invoice listings on the client side.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"

	"github.com/mhric/sfcli/superfaktura"
)

// Filter is a compiled expression that can be evaluated against contacts
// and invoices. Compiled filters are safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // entity properties are injected at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// MatchContact evaluates the filter against a contact
func (f *Filter) MatchContact(contact superfaktura.Contact) (bool, error) {
	return f.run(contactEnvironment(contact))
}

// MatchInvoice evaluates the filter against an invoice
func (f *Filter) MatchInvoice(invoice superfaktura.Invoice) (bool, error) {
	return f.run(invoiceEnvironment(invoice))
}

func (f *Filter) run(env map[string]any) (bool, error) {
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Err: err}
	}
	// AsBool() during compilation guarantees a bool result
	return result.(bool), nil
}

// helperFunctions creates the static helper functions used during compilation
func helperFunctions() map[string]any {
	env := make(map[string]any, 16)

	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now

	return env
}

// contactEnvironment creates the runtime environment for contact evaluation
func contactEnvironment(contact superfaktura.Contact) map[string]any {
	env := helperFunctions()

	env["Contact"] = contact
	env["ID"] = contact.ID
	env["Name"] = contact.Name
	env["ICO"] = deref(contact.ICO)
	env["DIC"] = deref(contact.DIC)
	env["Email"] = deref(contact.Email)
	env["Phone"] = deref(contact.Phone)
	env["City"] = deref(contact.City)
	env["Country"] = deref(contact.Country)
	env["IBAN"] = deref(contact.IBAN)
	env["Comment"] = deref(contact.Comment)
	env["Created"] = contact.Created
	env["Modified"] = contact.Modified

	currency := ""
	if contact.DefaultCurrency != nil {
		currency = string(*contact.DefaultCurrency)
	}
	env["Currency"] = currency

	return env
}

// invoiceEnvironment creates the runtime environment for invoice evaluation
func invoiceEnvironment(invoice superfaktura.Invoice) map[string]any {
	env := helperFunctions()

	env["Invoice"] = invoice
	env["ID"] = invoice.ID
	env["ClientID"] = invoice.ClientID
	env["Name"] = invoice.Name
	env["Type"] = string(invoice.Type)
	env["Status"] = string(invoice.Status)
	env["Flag"] = string(invoice.Flag)
	env["Currency"] = string(invoice.InvoiceCurrency)
	env["InvoiceNo"] = invoice.InvoiceNoFormatted
	env["Created"] = invoice.Created
	env["DueDate"] = invoice.DueDate
	env["DeliveryDate"] = invoice.DeliveryDate
	env["ItemCount"] = len(invoice.Items)

	// Amounts as floats so plain comparison operators work in expressions.
	env["Total"] = toFloat(invoice.TotalWithoutVAT)
	env["TotalWithVAT"] = toFloat(invoice.TotalWithVAT)
	env["VAT"] = toFloat(invoice.VAT)
	env["Discount"] = toFloat(invoice.Discount)

	env["isPaid"] = func() bool { return invoice.Status == superfaktura.InvoiceStatusPaid }
	env["isOverdue"] = func() bool { return invoice.Status == superfaktura.InvoiceStatusOverdue }
	env["isDraft"] = func() bool { return invoice.Status == superfaktura.InvoiceStatusDraft }

	return env
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
