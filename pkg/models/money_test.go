package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "1234.56", FormatCents(123456))
	assert.Equal(t, "999999999.99", FormatCents(MaxAmountCents))
	assert.Equal(t, "-12.34", FormatCents(-1234))
}

func TestFormatCentsGrouped(t *testing.T) {
	assert.Equal(t, "0.00", FormatCentsGrouped(0))
	assert.Equal(t, "123.45", FormatCentsGrouped(12345))
	assert.Equal(t, "1 234.56", FormatCentsGrouped(123456))
	assert.Equal(t, "1 234 567.89", FormatCentsGrouped(123456789))
	assert.Equal(t, "999 999 999.99", FormatCentsGrouped(MaxAmountCents))
	assert.Equal(t, "-1 000.00", FormatCentsGrouped(-100000))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.AsError())

	errs.Append("amount", "must not be negative")
	errs.Append("currency", "must be CHF or EUR")

	err := errs.AsError()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 validation error(s)")
	assert.Contains(t, err.Error(), "amount: must not be negative")
}

func TestEnums(t *testing.T) {
	assert.True(t, CHF.Valid())
	assert.True(t, EUR.Valid())
	assert.False(t, Currency("USD").Valid())

	assert.True(t, ReferenceQRR.Valid())
	assert.True(t, ReferenceSCOR.Valid())
	assert.True(t, ReferenceNON.Valid())
	assert.False(t, ReferenceType("QRX").Valid())
}
