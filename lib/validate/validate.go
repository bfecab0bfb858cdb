// Package validate implements the client-side input checks run before any request is sent.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	upiRegex   = regexp.MustCompile(`^[\w.\-]+@[a-zA-Z]+$`)
	cardRegex  = regexp.MustCompile(`^\d{16}$`)
	cvvRegex   = regexp.MustCompile(`^\d{3,4}$`)
)

// Accepted card expiry layouts.
var expiryLayouts = []string{"01/06", "01/2006", "2006-01-02", "2006-01"}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Errors collects every failed check of a form.
type Errors []*ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Message
	}
	return strings.Join(msgs, "; ")
}

// Returns nil if no check failed.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func newError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Required fails if any of the named values is blank.
// Fields are checked in order; the first blank one is reported.
func Required(message string, fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return newError(f.Name, message)
		}
	}
	return nil
}

// Named form value.
type Field struct {
	Name  string
	Value string
}

func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return newError("email", "Please enter a valid email address.")
	}
	return nil
}

func Phone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return newError("phone", "Please enter a valid 10-digit phone number.")
	}
	return nil
}

func UPIID(id string) error {
	if !upiRegex.MatchString(id) {
		return newError("upiId", "Invalid UPI ID format.")
	}
	return nil
}

func CardNumber(number string) error {
	if !cardRegex.MatchString(number) {
		return newError("cardNumber", "Card number must be 16 digits.")
	}
	return nil
}

func CVV(cvv string) error {
	if !cvvRegex.MatchString(cvv) {
		return newError("cvv", "CVV must be 3 or 4 digits.")
	}
	return nil
}

// ExpiryDate fails unless expiry parses and is after now.
// Month-only layouts expire at the end of that month.
func ExpiryDate(expiry string, now time.Time) error {
	t, monthOnly, err := parseExpiry(strings.TrimSpace(expiry))
	if err != nil {
		return newError("expiryDate", fmt.Sprintf("Invalid expiry date \"%s\".", expiry))
	}
	if monthOnly {
		t = t.AddDate(0, 1, 0)
	}
	if !t.After(now) {
		return newError("expiryDate", "Expiry date must be in the future.")
	}
	return nil
}

func parseExpiry(expiry string) (time.Time, bool, error) {
	var lastErr error
	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, expiry)
		if err == nil {
			return t, layout != "2006-01-02", nil
		}
		lastErr = err
	}
	return time.Time{}, false, lastErr
}

func OTP(otp string) error {
	if strings.TrimSpace(otp) == "" {
		return newError("otp", "Please enter the OTP.")
	}
	return nil
}
