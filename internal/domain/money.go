package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

// Add keeps the receiver's currency. Carts are single-currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}

var symbols = map[currency.Unit]string{
	currency.ZAR: "R",
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
}

var maxGrouped = decimal.NewFromInt(math.MaxInt64)

// MoneyFormatter renders amounts as "R1,400.00": narrow symbol, grouped, two decimals.
// Only the integer part goes through the printer; cents come from the decimal.
type MoneyFormatter struct {
	printer   *message.Printer
	separator string
}

func NewMoneyFormatter(tag language.Tag) MoneyFormatter {
	printer := message.NewPrinter(tag)

	separator := strings.TrimSuffix(strings.TrimPrefix(
		printer.Sprint(number.Decimal(1.5, number.Scale(1))), "1"), "5")
	if separator == "" {
		separator = "."
	}

	return MoneyFormatter{printer: printer, separator: separator}
}

func (f MoneyFormatter) Format(m Money) string {
	symbol, ok := symbols[m.Currency]
	if !ok {
		symbol = m.Currency.String() + " "
	}

	amount := m.Amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, cents, _ := strings.Cut(amount.StringFixed(2), ".")

	if integer := amount.Truncate(0); integer.LessThanOrEqual(maxGrouped) {
		whole = f.printer.Sprint(number.Decimal(integer.IntPart()))
	}

	return fmt.Sprintf("%s%s%s%s%s", sign, symbol, whole, f.separator, cents)
}
