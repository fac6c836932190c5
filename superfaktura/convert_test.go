package superfaktura

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyToNil(t *testing.T) {
	assert.Nil(t, emptyToNil(""))

	got := emptyToNil("value")
	require.NotNil(t, got)
	assert.Equal(t, "value", *got)
}

func TestParseDecimalString(t *testing.T) {
	d, err := parseDecimalString("123.45", "test value")
	require.NoError(t, err)
	assert.Equal(t, "123.45", d.String())

	_, err = parseDecimalString("not-a-number", "test value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test value")
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestParseWireTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "timestamp",
			input:    "2024-03-01 15:04:05",
			expected: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
		},
		{
			name:     "bare date",
			input:    "2024-03-01",
			expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWireTime(tt.input, "test field")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "test field")
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestFormatWireDatePtr(t *testing.T) {
	assert.Nil(t, formatWireDatePtr(nil))

	date := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	got := formatWireDatePtr(&date)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-01", *got)
}
