// Package money normalizes the locale-ambiguous amount strings the clients
// send ("1 234,500", "13.246.500", "1500") into canonical decimals.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse returns the decimal value of s, or zero when s cannot be read as a
// number. It never fails: a malformed amount contributes nothing to a total
// instead of blocking a save.
//
// Commas are treated as decimal points. When several dots remain, every
// fragment but the last is assumed to be a thousands group and the last one
// the decimal part, so "13.246.500" reads as 13246.5. The price of that
// tolerance is that a genuine three-decimal value written with stray
// separators is indistinguishable from grouped thousands; accepted ambiguity.
func Parse(s string) decimal.Decimal {
	str := strings.Join(strings.Fields(s), "")
	str = strings.ReplaceAll(str, ",", ".")
	if str == "" {
		return decimal.Zero
	}

	parts := strings.Split(str, ".")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		str = strings.Join(parts[:len(parts)-1], "") + "." + last
	}

	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAny accepts the loose payload values a JSON client may send for an
// amount: string, float64 or nil.
func ParseAny(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case decimal.Decimal:
		return x
	case string:
		return Parse(x)
	default:
		return decimal.Zero
	}
}
