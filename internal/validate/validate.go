package validate

import (
	"fmt"
	"strings"
	"time"

	emailverifier "github.com/AfterShip/email-verifier"
	"github.com/nyaruka/phonenumbers"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	startLayout = dateLayout + " " + clockLayout
)

// ValidationError reports malformed user input with a human-readable reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validator normalizes email addresses and phone numbers into the canonical
// forms stored by the repositories.
type Validator struct {
	defaultRegion string
	checkMX       bool
	verifier      *emailverifier.Verifier
}

// New builds a Validator. defaultRegion is the two-letter region used for
// phone parsing when the caller passes none; checkMX enables deliverability
// checking against the domain's MX records.
func New(defaultRegion string, checkMX bool) *Validator {
	return &Validator{
		defaultRegion: strings.ToUpper(defaultRegion),
		checkMX:       checkMX,
		verifier:      emailverifier.NewVerifier(),
	}
}

// NormalizeEmail validates syntax (and deliverability when MX checking is on)
// and returns the address lower-cased. Idempotent.
func (v *Validator) NormalizeEmail(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	syntax := v.verifier.ParseAddress(addr)
	if !syntax.Valid {
		return "", &ValidationError{Field: "email", Reason: fmt.Sprintf("%q is not a valid address", addr)}
	}
	if v.checkMX {
		mx, err := v.verifier.CheckMX(syntax.Domain)
		if err != nil || !mx.HasMXRecord {
			return "", &ValidationError{Field: "email", Reason: fmt.Sprintf("domain %q has no MX records", syntax.Domain)}
		}
	}
	return strings.ToLower(addr), nil
}

// NormalizePhone parses raw as a phone number in the given region (default
// region when empty) and returns it in E.164 form. The number must be valid
// and valid for that region. Idempotent: an E.164 input parses back to itself.
func (v *Validator) NormalizePhone(raw, region string) (string, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = v.defaultRegion
	}
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", &ValidationError{Field: "phone", Reason: err.Error()}
	}
	if !phonenumbers.IsValidNumber(num) || !phonenumbers.IsValidNumberForRegion(num, region) {
		return "", &ValidationError{Field: "phone", Reason: fmt.Sprintf("not a valid number for region %s", region)}
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// CombineDateTime validates a "YYYY-MM-DD" date and an "HH:MM" clock and
// returns the combined canonical start value stored for appointments.
func CombineDateTime(date, clock string) (string, error) {
	t, err := time.Parse(startLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock))
	if err != nil {
		return "", &ValidationError{
			Field:  "start",
			Reason: fmt.Sprintf("expected formats %s and %s", dateLayout, clockLayout),
		}
	}
	return t.Format(startLayout), nil
}

// Now returns the current time in the appointment start layout, used as the
// reference point for future/past listing filters.
func Now() string {
	return time.Now().Format(startLayout)
}
