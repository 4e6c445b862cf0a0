package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		value  string
		prefix string
		want   string
	}{
		{"0", "R$", "R$ 0,00"},
		{"999.99", "R$", "R$ 999,99"},
		{"1000", "R$", "R$ 1,00 mil"},
		{"1500", "", "1,50 mil"},
		{"12345.678", "R$", "R$ 12,35 mil"},
		{"2500000", "R$", "R$ 2,50 milhões"},
		{"1234000000", "", "1.234,00 milhões"},
		{"42", "", "42,00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(decimal.RequireFromString(tt.value), tt.prefix))
		})
	}
}

func TestCurrencyAndCount(t *testing.T) {
	assert.Equal(t, "R$ 350,00", Currency(decimal.NewFromInt(350)))
	assert.Equal(t, "3,00", Count(3))
	assert.Equal(t, "9,09 mil", Count(9087))
	assert.Equal(t, "0,00", Count(0))
}

func TestInteger(t *testing.T) {
	assert.Equal(t, "1.234.567", Integer(1234567))
	assert.Equal(t, "12", Integer(12))
}
