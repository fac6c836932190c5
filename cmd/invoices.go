package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mhric/sfcli/filter"
	"github.com/mhric/sfcli/superfaktura"
)

var (
	invoiceData      string
	invoiceContactID int

	payAmount   string
	payCurrency string
	payDate     string
	payType     string

	pdfLang string
	pdfDir  string
)

// pdfDownloadLimit bounds concurrent PDF downloads.
const pdfDownloadLimit = 4

// invoiceDocument is the --data shape for invoice create and update: the
// invoice fields plus either a contact reference or a full inline contact.
type invoiceDocument struct {
	Invoice   superfaktura.InvoiceInput
	ContactID int
	Contact   *superfaktura.ContactInput
}

// invoicePatchDocument mirrors invoiceDocument for partial updates.
type invoicePatchDocument struct {
	Invoice   superfaktura.InvoicePatch
	ContactID int
	Contact   *superfaktura.ContactInput
}

// invoicesCmd represents the invoices command group
var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice",
	Long: `Create an invoice from a JSON document passed via --data (inline or
@file). The document carries the invoice fields, the line items, and the
contact, e.g.:

  {
    "Invoice": {"Name": "2024-001", "Items": [{"Name": "Consulting", "UnitPrice": "100"}]},
    "ContactID": 123
  }

Instead of ContactID, a full "Contact" object creates or merges the
contact on the fly.`,
	RunE: runInvoicesCreate,
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an invoice with its line items",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesGet,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE:  runInvoicesList,
}

var invoicesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an invoice",
	Long: `Update an invoice. Only the fields present in --data are sent; line
items in the document replace the invoice's items wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesUpdate,
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesDelete,
}

var invoicesPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Record a payment against an invoice",
	Long: `Record a payment against an invoice. Without --amount the full
remaining total is paid.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesPay,
}

var invoicesMarkSentCmd = &cobra.Command{
	Use:   "mark-sent <id>",
	Short: "Flag an invoice as sent",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesMarkSent,
}

var invoicesPDFCmd = &cobra.Command{
	Use:   "pdf <id> [id...]",
	Short: "Download invoice PDFs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInvoicesPDF,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesUpdateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesPayCmd)
	invoicesCmd.AddCommand(invoicesMarkSentCmd)
	invoicesCmd.AddCommand(invoicesPDFCmd)

	invoicesCreateCmd.Flags().StringVar(&invoiceData, "data", "", "invoice document as JSON (inline or @file)")
	invoicesCreateCmd.Flags().IntVar(&invoiceContactID, "contact-id", 0, "existing contact to bill (overrides the document)")

	invoicesListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	invoicesListCmd.Flags().IntVar(&listPerPage, "per-page", 0, "items per page")
	invoicesListCmd.Flags().StringVar(&listSearch, "search", "", "search term")
	invoicesListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter expression applied to the fetched page")

	invoicesUpdateCmd.Flags().StringVar(&invoiceData, "data", "", "fields to change as JSON (inline or @file)")

	invoicesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")

	invoicesPayCmd.Flags().StringVar(&payAmount, "amount", "", "amount to pay (default: full remaining total)")
	invoicesPayCmd.Flags().StringVar(&payCurrency, "currency", "", "payment currency")
	invoicesPayCmd.Flags().StringVar(&payDate, "date", "", "payment date (YYYY-MM-DD, default today on the server)")
	invoicesPayCmd.Flags().StringVar(&payType, "payment-type", "", "payment type (transfer, cash, card, ...)")

	invoicesPDFCmd.Flags().StringVar(&pdfLang, "lang", "", "document language (slo, cze, eng, ...)")
	invoicesPDFCmd.Flags().StringVar(&pdfDir, "dir", ".", "directory to write PDFs into")
}

func runInvoicesCreate(cmd *cobra.Command, args []string) error {
	if invoiceData == "" {
		return fmt.Errorf("--data is required for create")
	}

	var doc invoiceDocument
	if err := decodeDataFlag(invoiceData, &doc); err != nil {
		return err
	}
	if invoiceContactID != 0 {
		doc.ContactID = invoiceContactID
		doc.Contact = nil
	}

	ref, err := contactRefFromDocument(doc.ContactID, doc.Contact)
	if err != nil {
		return err
	}

	inv, err := client.Invoices.Create(context.Background(), doc.Invoice, ref)
	if err != nil {
		return err
	}

	logger.Info().Str("id", inv.ID).Str("number", inv.InvoiceNoFormatted).Msg("Invoice created")
	return printResult(inv, func() { printInvoice(inv) })
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv, err := client.Invoices.Get(context.Background(), id)
	if err != nil {
		return err
	}
	return printResult(inv, func() { printInvoice(inv) })
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	result, err := client.Invoices.List(context.Background(), superfaktura.ListQuery{
		Page:    listPage,
		PerPage: listPerPage,
		Search:  listSearch,
	})
	if err != nil {
		return err
	}

	if listFilter != "" {
		f, err := filter.Compile(listFilter)
		if err != nil {
			return err
		}
		kept := result.Items[:0]
		for _, inv := range result.Items {
			match, err := f.MatchInvoice(inv)
			if err != nil {
				return err
			}
			if match {
				kept = append(kept, inv)
			}
		}
		result.Items = kept
	}

	return printResult(result, func() { printInvoiceList(result) })
}

func runInvoicesUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if invoiceData == "" {
		return fmt.Errorf("--data is required for update")
	}

	var doc invoicePatchDocument
	if err := decodeDataFlag(invoiceData, &doc); err != nil {
		return err
	}

	var ref *superfaktura.ContactRef
	if doc.ContactID != 0 || doc.Contact != nil {
		r, err := contactRefFromDocument(doc.ContactID, doc.Contact)
		if err != nil {
			return err
		}
		ref = &r
	}

	inv, err := client.Invoices.Update(context.Background(), id, doc.Invoice, ref)
	if err != nil {
		return err
	}

	logger.Info().Str("id", inv.ID).Msg("Invoice updated")
	return printResult(inv, func() { printInvoice(inv) })
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete invoice %d?", id), assumeYes) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	if err := client.Invoices.Delete(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Invoice %d deleted.\n", id)
	return nil
}

func runInvoicesPay(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var input superfaktura.PaymentInput
	if payAmount != "" {
		amount, err := decimal.NewFromString(payAmount)
		if err != nil {
			return fmt.Errorf("invalid --amount %q", payAmount)
		}
		input.Amount = &amount
	}
	if payCurrency != "" {
		currency := superfaktura.Currency(payCurrency)
		input.Currency = &currency
	}
	if payDate != "" {
		date, err := time.Parse("2006-01-02", payDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", payDate)
		}
		input.Date = &date
	}
	if payType != "" {
		paymentType := superfaktura.PaymentType(payType)
		input.PaymentType = &paymentType
	}

	result, err := client.Invoices.Pay(context.Background(), id, input)
	if err != nil {
		return err
	}

	logger.Info().Int("invoice_id", result.InvoiceID).Str("paid", result.Paid.String()).Msg("Payment recorded")
	return printResult(result, func() { printPaymentResult(result) })
}

func runInvoicesMarkSent(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := client.Invoices.MarkAsSent(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Invoice %d marked as sent.\n", id)
	return nil
}

func runInvoicesPDF(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	lang := superfaktura.Language(pdfLang)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(pdfDownloadLimit)

	for _, id := range ids {
		g.Go(func() error {
			result, err := client.Invoices.DownloadPDF(ctx, id, lang)
			if err != nil {
				return fmt.Errorf("invoice %d: %w", id, err)
			}

			path := filepath.Join(pdfDir, fmt.Sprintf("invoice-%d.pdf", id))
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("invoice %d: write %s: %w", id, path, err)
			}

			logger.Info().Int("id", id).Str("path", path).Int("bytes", len(result.Data)).Msg("PDF downloaded")
			fmt.Printf("Wrote %s (%d bytes)\n", path, len(result.Data))
			return nil
		})
	}

	return g.Wait()
}

// contactRefFromDocument resolves the contact part of an invoice document.
func contactRefFromDocument(contactID int, contact *superfaktura.ContactInput) (superfaktura.ContactRef, error) {
	switch {
	case contactID != 0 && contact != nil:
		return superfaktura.ContactRef{}, fmt.Errorf("specify either ContactID or Contact, not both")
	case contact != nil:
		return superfaktura.ContactWith(*contact), nil
	case contactID > 0:
		return superfaktura.ContactByID(contactID), nil
	default:
		return superfaktura.ContactRef{}, fmt.Errorf("the invoice document must name a contact (ContactID or Contact)")
	}
}
