package billing

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT",
	"NINE", "TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
	"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tensWords = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY",
	"EIGHTY", "NINETY",
}

// AmountInWords renders the integer portion of a grand total the way it
// appears on the printed invoice: upper-cased Indian-system words followed
// by the currency phrase, e.g. "ELEVEN THOUSAND NINE HUNDRED SEVENTY
// RUPEES ONLY".
func AmountInWords(amount float64) string {
	n := int64(math.Floor(amount))
	if n < 0 {
		n = 0
	}
	return strings.TrimSpace(numberToWords(n)) + " RUPEES ONLY"
}

// numberToWords converts n using Indian grouping: crore (1e7), lakh (1e5),
// thousand, hundred.
func numberToWords(n int64) string {
	if n == 0 {
		return "ZERO"
	}

	var parts []string
	appendGroup := func(value int64, unit string) int64 {
		if q := n / value; q > 0 {
			parts = append(parts, numberToWords(q), unit)
			n %= value
		}
		return n
	}

	n = appendGroup(10000000, "CRORE")
	n = appendGroup(100000, "LAKH")
	n = appendGroup(1000, "THOUSAND")
	n = appendGroup(100, "HUNDRED")

	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}

	return strings.Join(parts, " ")
}
