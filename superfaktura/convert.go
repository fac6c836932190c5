package superfaktura

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// wireDate is the date format the API expects and returns for plain dates.
const wireDate = "2006-01-02"

// wireDateTime is the timestamp format on created/modified fields.
const wireDateTime = "2006-01-02 15:04:05"

// emptyToNil maps the API's ""-as-null convention to an absent field.
func emptyToNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// parseDecimalString parses a decimal carried as a string on the wire. A
// value that does not parse is a labeled error, never a silent zero.
func parseDecimalString(value, label string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("superfaktura: invalid numeric value for %s: %q", label, value)
	}
	return d, nil
}

// parseDecimalNumber parses a decimal carried as a JSON number.
func parseDecimalNumber(value json.Number, label string) (decimal.Decimal, error) {
	return parseDecimalString(value.String(), label)
}

// parseWireTime accepts either a timestamp or a bare date, which the API
// uses interchangeably on date fields.
func parseWireTime(value, label string) (time.Time, error) {
	if t, err := time.Parse(wireDateTime, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(wireDate, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("superfaktura: invalid date value for %s: %q", label, value)
	}
	return t, nil
}

func formatWireDate(t time.Time) string {
	return t.Format(wireDate)
}

func formatWireDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatWireDate(*t)
	return &s
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
