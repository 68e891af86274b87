package output

import (
	"strconv"

	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders whole dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return dec.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal already in percent units with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate such as 0.035 as "3.50%".
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Shift(2)) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func money(d decimal.Decimal) string { return dec.NewMoneyFromDecimal(d).String() }
