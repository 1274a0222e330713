package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrbill/pkg/models"
)

func validAddress() models.Address {
	return models.Address{
		Name:       "Robert Schneider AG",
		Line1:      "Rue du Lac 1268",
		PostalCode: "2501",
		City:       "Biel",
		Country:    "CH",
	}
}

func TestValidateAccepts(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.Validate(validAddress(), "creditor"))

	// Line2 is optional and may carry Latin-1 text
	addr := validAddress()
	addr.Line2 = "Bâtiment B, 2ème étage"
	assert.Empty(t, v.Validate(addr, "creditor"))
}

// Validation collects every violation instead of stopping at the first.
func TestValidateCollectsAllViolations(t *testing.T) {
	v := NewValidator()

	addr := models.Address{
		Name:       "",
		Line1:      strings.Repeat("x", 71),
		PostalCode: strings.Repeat("9", 17),
		City:       strings.Repeat("y", 36),
		Country:    "Switzerland",
	}
	errs := v.Validate(addr, "debtor")
	require.Len(t, errs, 5)

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Contains(t, fields, "debtor.name")
	assert.Contains(t, fields, "debtor.line1")
	assert.Contains(t, fields, "debtor.postalCode")
	assert.Contains(t, fields, "debtor.city")
	assert.Contains(t, fields, "debtor.country")
}

func TestValidateCountryCode(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		country string
		valid   bool
	}{
		{"CH", true},
		{"LI", true},
		{"DE", true},
		{"ch", false},
		{"C", false},
		{"CHE", false},
		{"C1", false},
		{"", false},
	}
	for _, tt := range tests {
		addr := validAddress()
		addr.Country = tt.country
		errs := v.Validate(addr, "")
		if tt.valid {
			assert.Empty(t, errs, "country %q", tt.country)
		} else {
			require.Len(t, errs, 1, "country %q", tt.country)
			assert.Equal(t, "country", errs[0].Field)
		}
	}
}

func TestValidateCharset(t *testing.T) {
	v := NewValidator()

	addr := validAddress()
	addr.Name = "Control\x07Char"
	errs := v.Validate(addr, "")
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)

	// Characters outside Latin-1 are rejected
	addr = validAddress()
	addr.City = "Zürich 🏔"
	errs = v.Validate(addr, "")
	require.Len(t, errs, 1)
	assert.Equal(t, "city", errs[0].Field)
}

func TestValidateLengthInRunes(t *testing.T) {
	v := NewValidator()

	// 70 accented runes are exactly at the limit
	addr := validAddress()
	addr.Name = strings.Repeat("é", 70)
	assert.Empty(t, v.Validate(addr, ""))

	addr.Name = strings.Repeat("é", 71)
	errs := v.Validate(addr, "")
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}
