package validator

import (
	"errors"
	"net/mail"
	"strings"
)

// NormalizeEmail lowercases and trims an address so dedup checks compare
// the same canonical form the database stores.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email format")
	}
	// Reject "Name <addr>" forms; submissions must send the bare address.
	if addr.Address != email {
		return errors.New("invalid email format")
	}
	if !strings.Contains(strings.SplitN(email, "@", 2)[1], ".") {
		return errors.New("invalid email domain")
	}
	return nil
}
