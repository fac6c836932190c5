// Package superfaktura provides a typed client for the SuperFaktura
// invoicing API.
//
// The remote API is loosely typed: numbers arrive as strings, "" doubles as
// null, records come wrapped in envelopes keyed by internal model names, and
// application failures are signaled by an in-body error code on 2xx
// responses. This package hides all of that behind a domain model (Contact,
// Invoice, InvoiceItem) and a small error taxonomy.
//
// # Usage
//
// Create a client with your credentials:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := superfaktura.NewClient(superfaktura.Config{
//		Email:  "me@example.com",
//		APIKey: "secret",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	contact, err := client.Contacts.Create(ctx, superfaktura.ContactInput{
//		Name: "ACME s.r.o.",
//	})
//
// # Error handling
//
// Every failure is classified so callers can tell "resource absent" from
// "malformed request" from "malformed response" from "network failure":
//
//   - ErrNotFound: any 404, regardless of body
//   - HTTPError: any other non-2xx status, with the decoded body
//   - APIError: 2xx with a positive in-body error code
//   - ValidationError: APIError with the API's field messages attached
//   - SchemaError: local input or response shape violation
//   - TimeoutError: the configured per-request timeout elapsed
//
// Nothing is retried or cached; every call is one request, and concurrent
// calls on one client are safe.
package superfaktura
