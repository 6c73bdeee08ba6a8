package format

import (
	"fmt"
	"math"
	"strings"
)

// symbols maps known currency tags to their display symbol. The tag only
// affects formatting, never arithmetic.
var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Symbol returns the display symbol for a currency tag, defaulting to "$".
func Symbol(currency string) string {
	if s, ok := symbols[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return s
	}
	return "$"
}

// Currency returns a currency string with a symbol and thousands separators
// (e.g., "-$1,234.56").
func Currency(amount float64, currency string) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-" + Symbol(currency) + formatted
	}
	return Symbol(currency) + formatted
}

// NumericCurrency returns a currency string without a symbol but with
// separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
