package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,235", FormatCurrency(decimal.NewFromFloat(1234.567)))
	assert.Equal(t, "$0", FormatCurrency(decimal.Zero))
	assert.Equal(t, "-$12,000", FormatCurrency(decimal.NewFromInt(-12000)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(12.3456)))
	assert.Equal(t, "3.50%", FormatRate(decimal.RequireFromString("0.035")))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "false", boolToString(false))
	assert.Equal(t, "10.50", money(decimal.RequireFromString("10.5")))
}
