package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

// ShiftLeft moves the decimal point left, atomic units to human.
func ShiftLeft(num decimal.Decimal, decimals int32) decimal.Decimal {
	return num.Shift(-decimals)
}

// ShiftRight moves the decimal point right, human to atomic units.
func ShiftRight(num decimal.Decimal, decimals int32) decimal.Decimal {
	return num.Shift(decimals)
}

// ToAtomicUnits converts a human-readable amount into atomic units of
// a token with the given decimals. The result is an unsigned integer
// decimal string; fractional dust below one atomic unit is dropped.
func ToAtomicUnits(amount string, decimals int32) (string, error) {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %v", err)
	}
	if amountDecimal.IsNegative() {
		return "", ErrNegativeAmount
	}

	return ShiftRight(amountDecimal, decimals).BigInt().String(), nil
}

// FromAtomicUnits converts an atomic-unit integer string back into a
// human-readable decimal string.
func FromAtomicUnits(raw string, decimals int32) (string, error) {
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("invalid raw amount: %v", err)
	}
	if n.IsNegative() {
		return "", ErrNegativeAmount
	}

	return ShiftLeft(n, decimals).String(), nil
}

// TruncateDisplay caps the fractional part of a decimal string at
// maxFrac digits. Trailing zeros go first, then the rest is cut, never
// rounded. Cosmetic only; raw values must not pass through here.
func TruncateDisplay(s string, maxFrac int) string {
	intPart, fracPart, found := strings.Cut(s, ".")
	if !found {
		return intPart
	}

	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > maxFrac {
		fracPart = fracPart[:maxFrac]
	}
	if fracPart == "" {
		return intPart
	}

	return intPart + "." + fracPart
}
