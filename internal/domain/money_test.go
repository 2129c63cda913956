package domain_test

import (
	"testing"

	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestMoneyFormatter_Format(t *testing.T) {
	f := domain.NewMoneyFormatter(language.English)

	tests := []struct {
		name   string
		amount string
		unit   currency.Unit
		want   string
	}{
		{name: "whole rand", amount: "700", unit: currency.ZAR, want: "R700.00"},
		{name: "grouped", amount: "1400", unit: currency.ZAR, want: "R1,400.00"},
		{name: "zero", amount: "0", unit: currency.ZAR, want: "R0.00"},
		{name: "cents", amount: "12.5", unit: currency.USD, want: "$12.50"},
		{name: "unknown symbol", amount: "3", unit: currency.JPY, want: "JPY 3.00"},
		{name: "large exact cents", amount: "90071992547409.93", unit: currency.ZAR, want: "R90,071,992,547,409.93"},
		{name: "beyond float precision", amount: "123456789012345678.01", unit: currency.ZAR, want: "R123,456,789,012,345,678.01"},
		{name: "half cent rounds", amount: "0.005", unit: currency.ZAR, want: "R0.01"},
		{name: "negative", amount: "-1400.5", unit: currency.ZAR, want: "-R1,400.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.NewMoney(decimal.RequireFromString(tt.amount), tt.unit)
			assert.Equal(t, tt.want, f.Format(m))
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	price := domain.NewMoney(decimal.RequireFromString("350"), currency.ZAR)

	total := price.Mul(2).Add(price)

	assert.True(t, total.Equal(domain.NewMoney(decimal.RequireFromString("1050.00"), currency.ZAR)))
}
