package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mhric/sfcli/superfaktura"
)

// printResult renders a value either as indented JSON (--json) or through
// the supplied text renderer.
func printResult(value any, text func()) error {
	if outputJSON {
		return printJSON(value)
	}
	text()
	return nil
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// renderError maps the client's error taxonomy onto messages a terminal
// user can act on.
func renderError(err error) string {
	if errors.Is(err, superfaktura.ErrNotFound) {
		return "Error: the requested resource was not found"
	}

	var verr *superfaktura.ValidationError
	if errors.As(err, &verr) {
		lines := []string{"Error: the API rejected the request:"}
		for _, detail := range verr.Details {
			lines = append(lines, "  - "+detail)
		}
		return strings.Join(lines, "\n")
	}

	var serr *superfaktura.SchemaError
	if errors.As(err, &serr) {
		lines := []string{fmt.Sprintf("Error: invalid %s:", serr.Label)}
		for _, field := range serr.Fields {
			lines = append(lines, "  - "+field)
		}
		return strings.Join(lines, "\n")
	}

	var herr *superfaktura.HTTPError
	if errors.As(err, &herr) {
		if herr.IsUnauthorized() {
			return "Error: authentication failed, check your email and API key"
		}
		return fmt.Sprintf("Error: %v", herr)
	}

	var terr *superfaktura.TimeoutError
	if errors.As(err, &terr) {
		return fmt.Sprintf("Error: %v", terr)
	}

	return fmt.Sprintf("Error: %v", err)
}

// confirm asks the user before a destructive operation. Non-interactive
// sessions and --yes skip the prompt.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes || !cfg.Safety.ConfirmDelete {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		// No terminal to ask on; require --yes instead of guessing.
		fmt.Fprintln(os.Stderr, "refusing to proceed without confirmation; pass --yes to override")
		return false
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

func printContact(contact *superfaktura.Contact) {
	fmt.Printf("Contact #%s: %s\n", contact.ID, contact.Name)
	printOptional("ICO", contact.ICO)
	printOptional("DIC", contact.DIC)
	printOptional("IC DPH", contact.ICDPH)
	printOptional("Email", contact.Email)
	printOptional("Phone", contact.Phone)
	printOptional("Address", contact.Address)
	printOptional("City", contact.City)
	printOptional("Zip", contact.Zip)
	printOptional("Country", contact.Country)
	printOptional("IBAN", contact.IBAN)
	if contact.DefaultCurrency != nil {
		fmt.Printf("  Currency: %s\n", *contact.DefaultCurrency)
	}
	if contact.DefaultDiscount != nil {
		fmt.Printf("  Discount: %s%%\n", contact.DefaultDiscount)
	}
	printOptional("Comment", contact.Comment)
	fmt.Printf("  Created:  %s\n", contact.Created.Format("2006-01-02"))
}

func printContactList(result *superfaktura.ListResult[superfaktura.Contact]) {
	if len(result.Items) == 0 {
		fmt.Println("No contacts found.")
		return
	}

	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%-8s %-34s %-28s\n", "ID", "NAME", "EMAIL")
	fmt.Println(strings.Repeat("-", 72))
	for _, contact := range result.Items {
		email := ""
		if contact.Email != nil {
			email = *contact.Email
		}
		fmt.Printf("%-8s %-34s %-28s\n", contact.ID, truncate(contact.Name, 32), truncate(email, 26))
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("Page %d of %d (%d contacts total)\n", result.Page, result.PageCount, result.ItemCount)
}

func printInvoice(inv *superfaktura.Invoice) {
	fmt.Printf("Invoice #%s: %s\n", inv.ID, inv.Name)
	fmt.Printf("  Number:   %s\n", inv.InvoiceNoFormatted)
	fmt.Printf("  Type:     %s\n", inv.Type)
	fmt.Printf("  Status:   %s (%s)\n", inv.Status, inv.Flag)
	fmt.Printf("  Total:    %s %s (without VAT %s, VAT %s)\n",
		inv.TotalWithVAT, inv.InvoiceCurrency, inv.TotalWithoutVAT, inv.VAT)
	fmt.Printf("  Issued:   %s\n", inv.Created.Format("2006-01-02"))
	fmt.Printf("  Delivery: %s\n", inv.DeliveryDate.Format("2006-01-02"))
	fmt.Printf("  Due:      %s\n", inv.DueDate.Format("2006-01-02"))
	if inv.PaymentType != nil {
		fmt.Printf("  Payment:  %s\n", *inv.PaymentType)
	}
	printOptional("Variable symbol", inv.VariableSymbol)

	fmt.Printf("  Items (%d):\n", len(inv.Items))
	for _, item := range inv.Items {
		quantity := "1"
		if item.Quantity != nil {
			quantity = item.Quantity.String()
		}
		unit := ""
		if item.UnitOfMeasure != nil {
			unit = " " + *item.UnitOfMeasure
		}
		fmt.Printf("    - %s: %s%s x %s = %s (with VAT %s)\n",
			item.Name, quantity, unit, item.UnitPrice, item.ItemPrice, item.ItemPriceWithVAT)
	}
}

func printInvoiceList(result *superfaktura.ListResult[superfaktura.Invoice]) {
	if len(result.Items) == 0 {
		fmt.Println("No invoices found.")
		return
	}

	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("%-8s %-16s %-10s %-9s %-14s %s\n", "ID", "NUMBER", "STATUS", "FLAG", "TOTAL", "DUE")
	fmt.Println(strings.Repeat("-", 78))
	for _, inv := range result.Items {
		total := fmt.Sprintf("%s %s", inv.TotalWithVAT, inv.InvoiceCurrency)
		fmt.Printf("%-8s %-16s %-10s %-9s %-14s %s\n",
			inv.ID, truncate(inv.InvoiceNoFormatted, 14), inv.Status, inv.Flag,
			total, inv.DueDate.Format("2006-01-02"))
	}
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("Page %d of %d (%d invoices total)\n", result.Page, result.PageCount, result.ItemCount)
}

func printPaymentResult(result *superfaktura.PaymentResult) {
	fmt.Printf("Payment recorded against invoice #%d\n", result.InvoiceID)
	fmt.Printf("  Paid:      %s %s\n", result.Paid, result.Currency)
	fmt.Printf("  Remaining: %s %s\n", result.ToPay, result.InvoiceCurrency)
	if result.Overdue {
		fmt.Println("  Invoice is overdue")
	}
}

func printOptional(label string, value *string) {
	if value != nil {
		fmt.Printf("  %s: %s\n", label, *value)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
