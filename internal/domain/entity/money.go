package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/faspay-hq/ledger/internal/domain/error"
)

// Monetary amounts travel through the API as decimal strings and are stored
// as int64 cents. String arithmetic keeps the codec free of floating point.

// MaxDecimalPlaces is the maximum number of decimal places allowed for amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string and converts it to cents.
// "10" -> 1000, "10.5" -> 1050, "10.50" -> 1050.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	switch {
	case len(parts) == 1 || len(parts[1]) == 0:
		digits = parts[0] + "00"
	case len(parts[1]) == 1:
		digits = parts[0] + parts[1] + "0"
	case len(parts[1]) == 2:
		digits = parts[0] + parts[1]
	default:
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	return cents, nil
}

// ParsePositiveAmount is ParseAmount restricted to strictly positive values,
// which is what every transfer requires.
func ParsePositiveAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	return cents, nil
}

// FormatAmount converts cents to a decimal string with two places.
// 1015 -> "10.15", 5 -> "0.05", -1000 -> "-10.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
