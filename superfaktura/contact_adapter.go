package superfaktura

import (
	"fmt"
	"strconv"
)

// contactFromAPI converts a decoded Client record into the domain contact.
// The record is validated first; the upstream is loosely typed enough that
// this defensive check regularly earns its keep.
func contactFromAPI(raw apiClient) (*Contact, error) {
	if err := validateShape(raw, "contact record"); err != nil {
		return nil, err
	}

	c := &Contact{
		ID:                    raw.ID,
		Name:                  raw.Name,
		ICO:                   emptyToNil(raw.Ico),
		DIC:                   emptyToNil(raw.Dic),
		ICDPH:                 emptyToNil(raw.IcDph),
		Address:               emptyToNil(raw.Address),
		City:                  emptyToNil(raw.City),
		Zip:                   emptyToNil(raw.Zip),
		State:                 emptyToNil(raw.State),
		Country:               emptyToNil(raw.Country),
		CountryID:             raw.CountryID,
		DeliveryName:          emptyToNil(raw.DeliveryName),
		DeliveryAddress:       emptyToNil(raw.DeliveryAddress),
		DeliveryCity:          emptyToNil(raw.DeliveryCity),
		DeliveryZip:           emptyToNil(raw.DeliveryZip),
		DeliveryState:         emptyToNil(raw.DeliveryState),
		DeliveryCountry:       emptyToNil(raw.DeliveryCountry),
		DeliveryCountryID:     raw.DeliveryCountryID,
		DeliveryPhone:         emptyToNil(raw.DeliveryPhone),
		Phone:                 emptyToNil(raw.Phone),
		Email:                 emptyToNil(raw.Email),
		DefaultVariableSymbol: emptyToNil(raw.DefaultVariable),
		BankAccount:           emptyToNil(raw.BankAccount),
		BankAccountPrefix:     emptyToNil(raw.BankAccountPrefix),
		BankCode:              emptyToNil(raw.BankCode),
		IBAN:                  emptyToNil(raw.Iban),
		SWIFT:                 emptyToNil(raw.Swift),
		Comment:               emptyToNil(raw.Comment),
		UUID:                  emptyToNil(raw.UUID),
	}

	if raw.Currency != "" {
		currency := Currency(raw.Currency)
		c.DefaultCurrency = &currency
	}

	if raw.Discount != nil && *raw.Discount != "" {
		discount, err := parseDecimalString(*raw.Discount, "contact discount")
		if err != nil {
			return nil, err
		}
		c.DefaultDiscount = &discount
	}

	if raw.DueDate != nil && *raw.DueDate != "" {
		days, err := strconv.Atoi(*raw.DueDate)
		if err != nil {
			return nil, fmt.Errorf("superfaktura: invalid integer value for contact due days: %q", *raw.DueDate)
		}
		c.DefaultDueDays = &days
	}

	created, err := parseWireTime(raw.Created, "contact created")
	if err != nil {
		return nil, err
	}
	modified, err := parseWireTime(raw.Modified, "contact modified")
	if err != nil {
		return nil, err
	}
	c.Created = created
	c.Modified = modified

	return c, nil
}

// contactInputToPayload builds the outbound Client payload for a create.
func contactInputToPayload(in ContactInput) (clientPayload, error) {
	payload, err := contactPatchToPayload(ContactPatch{
		Name:                  &in.Name,
		ICO:                   in.ICO,
		DIC:                   in.DIC,
		ICDPH:                 in.ICDPH,
		Address:               in.Address,
		City:                  in.City,
		Zip:                   in.Zip,
		State:                 in.State,
		Country:               in.Country,
		CountryID:             in.CountryID,
		DeliveryName:          in.DeliveryName,
		DeliveryAddress:       in.DeliveryAddress,
		DeliveryCity:          in.DeliveryCity,
		DeliveryZip:           in.DeliveryZip,
		DeliveryState:         in.DeliveryState,
		DeliveryCountry:       in.DeliveryCountry,
		DeliveryCountryID:     in.DeliveryCountryID,
		DeliveryPhone:         in.DeliveryPhone,
		Phone:                 in.Phone,
		Email:                 in.Email,
		DefaultCurrency:       in.DefaultCurrency,
		DefaultVariableSymbol: in.DefaultVariableSymbol,
		DefaultDiscount:       in.DefaultDiscount,
		DefaultDueDays:        in.DefaultDueDays,
		IBAN:                  in.IBAN,
		Comment:               in.Comment,
		UUID:                  in.UUID,
	})
	if err != nil {
		return clientPayload{}, err
	}
	return payload, nil
}

// contactPatchToPayload builds the outbound Client payload from a sparse
// patch. Only supplied fields appear on the wire; the country IDs are
// domain strings but wire integers.
func contactPatchToPayload(p ContactPatch) (clientPayload, error) {
	payload := clientPayload{
		Name:            p.Name,
		Ico:             p.ICO,
		Dic:             p.DIC,
		IcDph:           p.ICDPH,
		Address:         p.Address,
		City:            p.City,
		Zip:             p.Zip,
		State:           p.State,
		Country:         p.Country,
		DeliveryName:    p.DeliveryName,
		DeliveryAddress: p.DeliveryAddress,
		DeliveryCity:    p.DeliveryCity,
		DeliveryZip:     p.DeliveryZip,
		DeliveryState:   p.DeliveryState,
		DeliveryCountry: p.DeliveryCountry,
		DeliveryPhone:   p.DeliveryPhone,
		Phone:           p.Phone,
		Email:           p.Email,
		Currency:        stringPtr(p.DefaultCurrency),
		DefaultVariable: p.DefaultVariableSymbol,
		Discount:        p.DefaultDiscount,
		DueDate:         p.DefaultDueDays,
		Iban:            p.IBAN,
		Comment:         p.Comment,
		UUID:            p.UUID,
	}

	if p.CountryID != nil {
		id, err := strconv.Atoi(*p.CountryID)
		if err != nil {
			return clientPayload{}, fmt.Errorf("superfaktura: invalid integer value for country id: %q", *p.CountryID)
		}
		payload.CountryID = &id
	}
	if p.DeliveryCountryID != nil {
		id, err := strconv.Atoi(*p.DeliveryCountryID)
		if err != nil {
			return clientPayload{}, fmt.Errorf("superfaktura: invalid integer value for delivery country id: %q", *p.DeliveryCountryID)
		}
		payload.DeliveryCountryID = &id
	}

	return payload, nil
}
