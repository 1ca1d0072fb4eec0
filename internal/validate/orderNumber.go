package validate

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrCustomerRequired   = errors.New("customer name cannot be empty")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidCurrency    = errors.New("currency must be a 3 letter ISO code")
)

// ValidateOrderNumber checks the Luhn check digit of a numeric order number.
func ValidateOrderNumber(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func ValidateCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	return strings.ToUpper(code) == code && strings.Trim(code, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") == ""
}

func ValidateOrder(orderNum, customerName, email string, amountCents int64, currency string) error {
	if !ValidateOrderNumber(orderNum) {
		return ErrInvalidOrderNumber
	}
	if strings.TrimSpace(customerName) == "" {
		return ErrCustomerRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if !ValidateCurrency(currency) {
		return ErrInvalidCurrency
	}
	return nil
}
