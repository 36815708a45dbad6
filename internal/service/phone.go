package service

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	usPhone   = regexp.MustCompile(`^\+1[2-9]\d{9}$`)
)

// NormalizePhone converts a US phone number in any common notation to
// E.164 ("+15551234567").
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")

	phone := "+" + digits
	if len(digits) == 10 {
		phone = "+1" + digits
	}

	if !usPhone.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
