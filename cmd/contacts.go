package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mhric/sfcli/filter"
	"github.com/mhric/sfcli/superfaktura"
)

var (
	contactData    string
	contactName    string
	contactEmail   string
	contactGenUUID bool

	listPage    int
	listPerPage int
	listSearch  string
	listFilter  string

	assumeYes bool
)

// contactsCmd represents the contacts command group
var contactsCmd = &cobra.Command{
	Use:     "contacts",
	Aliases: []string{"clients"},
	Short:   "Manage contacts (customers)",
}

var contactsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact",
	Long: `Create a contact. Fields come either from flags or from a JSON
document passed via --data (inline or @file). JSON keys use the field
names of the contact input, e.g. {"Name": "ACME s.r.o.", "Email": "a@b.c"}.`,
	RunE: runContactsCreate,
}

var contactsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsGet,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE:  runContactsList,
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a contact",
	Long: `Update a contact. Only the fields present in --data are sent;
everything else stays untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runContactsUpdate,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsCreateCmd)
	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsUpdateCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)

	contactsCreateCmd.Flags().StringVar(&contactData, "data", "", "contact fields as JSON (inline or @file)")
	contactsCreateCmd.Flags().StringVar(&contactName, "name", "", "contact name")
	contactsCreateCmd.Flags().StringVar(&contactEmail, "email", "", "contact email")
	contactsCreateCmd.Flags().BoolVar(&contactGenUUID, "gen-uuid", false, "assign a generated UUID to the contact")

	contactsListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	contactsListCmd.Flags().IntVar(&listPerPage, "per-page", 0, "items per page")
	contactsListCmd.Flags().StringVar(&listSearch, "search", "", "search term")
	contactsListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter expression applied to the fetched page")

	contactsUpdateCmd.Flags().StringVar(&contactData, "data", "", "fields to change as JSON (inline or @file)")

	contactsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}

func runContactsCreate(cmd *cobra.Command, args []string) error {
	var input superfaktura.ContactInput
	if contactData != "" {
		if err := decodeDataFlag(contactData, &input); err != nil {
			return err
		}
	}
	if contactName != "" {
		input.Name = contactName
	}
	if contactEmail != "" {
		input.Email = &contactEmail
	}
	if contactGenUUID {
		id := uuid.NewString()
		input.UUID = &id
	}

	contact, err := client.Contacts.Create(context.Background(), input)
	if err != nil {
		return err
	}

	logger.Info().Str("id", contact.ID).Msg("Contact created")
	return printResult(contact, func() { printContact(contact) })
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	contact, err := client.Contacts.Get(context.Background(), id)
	if err != nil {
		return err
	}
	return printResult(contact, func() { printContact(contact) })
}

func runContactsList(cmd *cobra.Command, args []string) error {
	result, err := client.Contacts.List(context.Background(), superfaktura.ListQuery{
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
		for _, contact := range result.Items {
			match, err := f.MatchContact(contact)
			if err != nil {
				return err
			}
			if match {
				kept = append(kept, contact)
			}
		}
		result.Items = kept
	}

	return printResult(result, func() { printContactList(result) })
}

func runContactsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if contactData == "" {
		return fmt.Errorf("--data is required for update")
	}

	var patch superfaktura.ContactPatch
	if err := decodeDataFlag(contactData, &patch); err != nil {
		return err
	}

	contact, err := client.Contacts.Update(context.Background(), id, patch)
	if err != nil {
		return err
	}

	logger.Info().Str("id", contact.ID).Msg("Contact updated")
	return printResult(contact, func() { printContact(contact) })
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete contact %d?", id), assumeYes) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	if err := client.Contacts.Delete(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Contact %d deleted.\n", id)
	return nil
}

// decodeDataFlag decodes a --data value, which is either inline JSON or a
// @file reference. Unknown fields are rejected so typos surface instead of
// being silently dropped.
func decodeDataFlag(data string, out any) error {
	raw := []byte(data)
	if strings.HasPrefix(data, "@") {
		var err error
		raw, err = os.ReadFile(data[1:])
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid --data JSON: %w", err)
	}
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive integer", arg)
	}
	return id, nil
}
