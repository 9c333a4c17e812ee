package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// usdRates maps a currency code to units per 1 USD.
var usdRates = map[string]float64{
	"USD": 1,
	"LKR": 300,
	"EUR": 0.92,
	"GBP": 0.79,
	"INR": 83.2,
	"AUD": 1.52,
}

var symbols = map[string]string{
	"USD": "$",
	"LKR": "Rs ",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"AUD": "A$",
}

func Supported(code string) bool {
	_, ok := usdRates[strings.ToUpper(code)]
	return ok
}

func Currencies() []string {
	out := make([]string, 0, len(usdRates))
	for code := range usdRates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Convert converts amount between two supported currencies, rounded to 2 places.
func Convert(amount float64, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	fromRate, ok := usdRates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := usdRates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}
	if from == to {
		return Round2(amount), nil
	}

	return Round2(amount / fromRate * toRate), nil
}

// Format renders an amount for display, e.g. "$600.00" or "Rs 45,000.00".
func Format(amount float64, currency string) string {
	currency = strings.ToUpper(currency)
	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency + " "
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", Round2(amount))
	intPart, frac, _ := strings.Cut(whole, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + symbol + b.String() + "." + frac
}
