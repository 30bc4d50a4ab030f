package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every stored amount carries
const MoneyScale int32 = 2

// Money is an immutable monetary amount in the shop currency, always held at
// MoneyScale decimal places.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds amount to two decimals
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale)}
}

// MaxAmount is the exclusive upper bound of a caller-supplied amount: ten
// digits, two of them decimals.
var MaxAmount = decimal.New(1, 8)

// Reasons CheckAmount rejects an amount
var (
	ErrNegativeAmount  = errors.New("cannot be negative")
	ErrAmountPrecision = fmt.Errorf("cannot have more than %d decimal places", MoneyScale)
	ErrAmountTooLarge  = fmt.Errorf("must be less than %s", MaxAmount.String())
)

// CheckAmount reports why amount cannot be taken as a price as is. It never
// rounds.
func CheckAmount(amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return ErrNegativeAmount
	case !amount.Equal(amount.Round(MoneyScale)):
		return ErrAmountPrecision
	case amount.GreaterThanOrEqual(MaxAmount):
		return ErrAmountTooLarge
	}
	return nil
}

// NewPrice is NewMoney for caller input. Amounts CheckAmount rejects are
// returned as errors instead of being rounded.
func NewPrice(amount decimal.Decimal) (Money, error) {
	if err := CheckAmount(amount); err != nil {
		return Money{}, err
	}
	return NewMoney(amount), nil
}

// NewMoneyFromString parses a decimal string such as "19.99"
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d), nil
}

// MustMoney parses amount and panics on error. Intended for constants and tests.
func MustMoney(amount string) Money {
	m, err := NewMoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Times returns the amount multiplied by an integer quantity
func (m Money) Times(quantity int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

// Equals compares amounts
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with two fixed decimals
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Sum adds up a list of amounts
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount as a fixed two-decimal string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	*m = NewMoney(d)
	return nil
}

// Value implements driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("cannot scan %T into Money: %w", value, err)
	}
	*m = NewMoney(d)
	return nil
}
