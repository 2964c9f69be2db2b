package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCedi(t *testing.T) {
	assert.Equal(t, "GH₵45.50", FormatCedi(decimal.RequireFromString("45.5")))
	assert.Equal(t, "GH₵300.00", FormatCedi(decimal.NewFromInt(300)))
}

func TestNormalizeMSISDN(t *testing.T) {
	assert.Equal(t, "0241234567", NormalizeMSISDN(" 024 123 4567 "))
	assert.Equal(t, "+233241234567", NormalizeMSISDN("+233-24-123-4567"))
	assert.Equal(t, "", NormalizeMSISDN("   "))
}

func TestGenerateIDUnique(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}
