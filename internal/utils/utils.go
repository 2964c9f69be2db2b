package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateID returns a new unique identifier for stored records
func GenerateID() string {
	return primitive.NewObjectID().Hex()
}

// FormatCedi formats an amount in Ghana cedis with two decimals
func FormatCedi(amount decimal.Decimal) string {
	return "GH₵" + amount.StringFixed(2)
}

// NormalizeMSISDN strips whitespace and separators from a phone number
func NormalizeMSISDN(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if unicode.IsDigit(r) || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
