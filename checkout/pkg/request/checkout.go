package request

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	PaymentMethodCard      = "card"
	PaymentMethodBank      = "bank"
	PaymentMethodEasypaisa = "easypaisa"
	PaymentMethodJazzcash  = "jazzcash"
)

type Shipping struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone"`
}

// Payment is a tagged union keyed on Method. Only the fields belonging
// to the selected method are consulted; Validate rejects a payload whose
// tag fields are missing or malformed.
type Payment struct {
	Method string `json:"method" validate:"required,oneof=card bank easypaisa jazzcash"`

	// card
	CardNumber string `json:"cardNumber,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"`
	CardCvc    string `json:"cardCvc,omitempty"`

	// bank
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`

	// easypaisa and jazzcash
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Checkout struct {
	Shipping Shipping `json:"shipping" validate:"required"`
	Payment  Payment  `json:"payment" validate:"required"`
}

var (
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCvcPattern    = regexp.MustCompile(`^\d{3}$`)
)

// Validate checks the method specific fields of the payment union.
// Struct tag validation only covers the tag itself.
func (p Payment) Validate() error {
	switch p.Method {
	case PaymentMethodCard:
		digits := strings.ReplaceAll(p.CardNumber, " ", "")
		if len(digits) != 16 {
			return fmt.Errorf("card number must have 16 digits")
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return fmt.Errorf("card number must have 16 digits")
			}
		}
		if !cardExpiryPattern.MatchString(p.CardExpiry) {
			return fmt.Errorf("card expiry must be in MM/YY format")
		}
		if !cardCvcPattern.MatchString(p.CardCvc) {
			return fmt.Errorf("card cvc must have 3 digits")
		}
		return nil
	case PaymentMethodBank:
		if p.AccountName == "" {
			return fmt.Errorf("account name is required for bank transfer")
		}
		if p.AccountNumber == "" {
			return fmt.Errorf("account number is required for bank transfer")
		}
		return nil
	case PaymentMethodEasypaisa, PaymentMethodJazzcash:
		if p.AccountName == "" {
			return fmt.Errorf("account name is required for %s", p.Method)
		}
		if p.PhoneNumber == "" {
			return fmt.Errorf("phone number is required for %s", p.Method)
		}
		return nil
	default:
		return fmt.Errorf("unknown payment method %s", p.Method)
	}
}
