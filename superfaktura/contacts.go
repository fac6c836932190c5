package superfaktura

import (
	"context"
	"fmt"
	"net/http"
)

// ContactsService manages customer records (the API calls them "Client").
type ContactsService struct {
	client *Client
}

// Create creates a contact and returns the stored record.
func (s *ContactsService) Create(ctx context.Context, in ContactInput) (*Contact, error) {
	if err := validateShape(in, "contact input"); err != nil {
		return nil, err
	}
	payload, err := contactInputToPayload(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.do(ctx, http.MethodPost, "/clients/create", contactBody{Client: payload})
	if err != nil {
		return nil, err
	}
	return decodeContactResponse(resp)
}

// Get fetches a contact by ID.
func (s *ContactsService) Get(ctx context.Context, id int) (*Contact, error) {
	resp, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/clients/view/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeContactResponse(resp)
}

// List fetches one page of contacts. Pagination metadata falls back to
// tolerant defaults when the API omits it.
func (s *ContactsService) List(ctx context.Context, q ListQuery) (*ListResult[Contact], error) {
	resp, err := s.client.do(ctx, http.MethodGet, listPath("/clients/index.json", q), nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope[clientEnvelope]
	if err := resp.decode(&env); err != nil {
		return nil, err
	}

	items := make([]Contact, 0, len(env.Items))
	for _, wrapper := range env.Items {
		contact, err := contactFromAPI(wrapper.Client)
		if err != nil {
			return nil, err
		}
		items = append(items, *contact)
	}

	return newListResult(items, env, resp.StatusCode), nil
}

// Update applies a partial patch: only the supplied fields are sent, plus
// the id the API wants repeated in the body.
func (s *ContactsService) Update(ctx context.Context, id int, patch ContactPatch) (*Contact, error) {
	if err := validateShape(patch, "contact patch"); err != nil {
		return nil, err
	}
	payload, err := contactPatchToPayload(patch)
	if err != nil {
		return nil, err
	}
	payload.ID = &id

	resp, err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/clients/edit/%d", id), contactBody{Client: payload})
	if err != nil {
		return nil, err
	}
	return decodeContactResponse(resp)
}

// Delete removes a contact.
func (s *ContactsService) Delete(ctx context.Context, id int) error {
	_, err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/clients/delete/%d", id), nil)
	return err
}

// decodeContactResponse extracts the Client record from either response
// shape: view responses carry it at the top level, mutation responses nest
// it under "data".
func decodeContactResponse(resp *response) (*Contact, error) {
	var env struct {
		Client *apiClient      `json:"Client"`
		Data   *clientEnvelope `json:"data"`
	}
	if err := resp.decode(&env); err != nil {
		return nil, err
	}

	switch {
	case env.Data != nil && env.Data.Client.ID != "":
		return contactFromAPI(env.Data.Client)
	case env.Client != nil:
		return contactFromAPI(*env.Client)
	default:
		return nil, fmt.Errorf("superfaktura: response did not contain a Client record")
	}
}

// listPath appends the encoded query to a list endpoint. Pagination
// metadata is always requested so the index responds with a record instead
// of a bare array.
func listPath(base string, q ListQuery) string {
	if q.Page == 0 && q.PerPage == 0 && q.Search == "" {
		q.Page = 1
	}
	return base + "/" + NamedQueryPath(q)
}

// newListResult merges adapted items with pagination metadata, defaulting
// page and pageCount to 1 and perPage to the item count when absent.
func newListResult[T, E any](items []T, env listEnvelope[E], statusCode int) *ListResult[T] {
	result := &ListResult[T]{
		Items:      items,
		Page:       env.Page,
		PageCount:  env.PageCount,
		ItemCount:  env.ItemCount,
		PerPage:    env.PerPage,
		StatusCode: statusCode,
	}
	if result.Page == 0 {
		result.Page = 1
	}
	if result.PageCount == 0 {
		result.PageCount = 1
	}
	if result.ItemCount == 0 {
		result.ItemCount = len(items)
	}
	if result.PerPage == 0 {
		result.PerPage = len(items)
	}
	return result
}
