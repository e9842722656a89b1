package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	amountJunk = regexp.MustCompile(`[^\d.-]`)
	cardRun    = regexp.MustCompile(`\d{16}`)
)

// CoerceAmount turns whatever the processor put in an amount field into a
// non-negative float. Strings are sanitized before parsing; anything
// unparsable (or negative) is 0.
func CoerceAmount(v any) float64 {
	var amount float64
	switch t := v.(type) {
	case float64:
		amount = t
	case int:
		amount = float64(t)
	case int64:
		amount = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(amountJunk.ReplaceAllString(t, ""), 64)
		if err != nil {
			return 0
		}
		amount = parsed
	default:
		return 0
	}

	if amount < 0 {
		return 0
	}
	return amount
}

// MaskCard hides all but the last four digits of a card number. Values below
// the PAN length threshold are returned unchanged.
func MaskCard(cardNumber string) string {
	if len(cardNumber) < 12 {
		return cardNumber
	}
	return "••••" + cardNumber[len(cardNumber)-4:]
}

// BrandFromNumber infers the card network from the leading digits.
func BrandFromNumber(cardNumber string) string {
	switch {
	case strings.HasPrefix(cardNumber, "4"):
		return "VISA"
	case strings.HasPrefix(cardNumber, "5"):
		return "MASTERCARD"
	case strings.HasPrefix(cardNumber, "34"), strings.HasPrefix(cardNumber, "37"):
		return "AMEX"
	case strings.HasPrefix(cardNumber, "6011"), strings.HasPrefix(cardNumber, "644"), strings.HasPrefix(cardNumber, "65"):
		return "DISCOVER"
	default:
		return "VISA"
	}
}

// CardNumberFromText recovers a 16-digit PAN embedded in free text, or "".
// Last-resort extraction for history messages that inline the card number.
func CardNumberFromText(text string) string {
	return cardRun.FindString(text)
}
