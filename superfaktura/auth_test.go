package superfaktura

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		apiKey    string
		companyID int
		expected  string
	}{
		{
			name:     "without company",
			email:    "me@example.com",
			apiKey:   "secret",
			expected: "SFAPI apikey=secret&email=me%40example.com&module=API-go",
		},
		{
			name:      "with company",
			email:     "me@example.com",
			apiKey:    "secret",
			companyID: 42,
			expected:  "SFAPI apikey=secret&company_id=42&email=me%40example.com&module=API-go",
		},
		{
			name:      "zero company omitted",
			email:     "me@example.com",
			apiKey:    "secret",
			companyID: 0,
			expected:  "SFAPI apikey=secret&email=me%40example.com&module=API-go",
		},
		{
			name:     "key with reserved characters",
			email:    "me@example.com",
			apiKey:   "a&b=c d",
			expected: "SFAPI apikey=a%26b%3Dc+d&email=me%40example.com&module=API-go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildAuthHeader(tt.email, tt.apiKey, tt.companyID))
		})
	}
}

func TestBuildAuthHeaderDeterministic(t *testing.T) {
	first := BuildAuthHeader("me@example.com", "secret", 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildAuthHeader("me@example.com", "secret", 7))
	}
}
