package validate

import (
	"errors"
	"strings"
	"testing"
)

func newValidator() *Validator {
	// MX checking off: unit tests must not depend on DNS.
	return New("US", false)
}

func TestNormalizeEmail(t *testing.T) {
	v := newValidator()

	got, err := v.NormalizeEmail("ANA@Example.com")
	if err != nil {
		t.Fatalf("NormalizeEmail: %v", err)
	}
	if got != "ana@example.com" {
		t.Errorf("got %q, want ana@example.com", got)
	}

	// idempotent
	again, err := v.NormalizeEmail(got)
	if err != nil {
		t.Fatalf("second NormalizeEmail: %v", err)
	}
	if again != got {
		t.Errorf("not idempotent: %q != %q", again, got)
	}
}

func TestNormalizeEmailInvalid(t *testing.T) {
	v := newValidator()
	for _, in := range []string{"", "no-at-sign", "a@", "@example.com", "a b@example.com"} {
		if _, err := v.NormalizeEmail(in); err == nil {
			t.Errorf("NormalizeEmail(%q): expected error", in)
		} else {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("NormalizeEmail(%q): error is not a ValidationError: %v", in, err)
			}
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	v := newValidator()

	got, err := v.NormalizePhone("(415) 555-2671", "")
	if err != nil {
		t.Fatalf("NormalizePhone: %v", err)
	}
	if got != "+14155552671" {
		t.Errorf("got %q, want +14155552671", got)
	}
	if !strings.HasPrefix(got, "+") || strings.ContainsAny(got[1:], " -()") {
		t.Errorf("not E.164: %q", got)
	}

	// idempotent
	again, err := v.NormalizePhone(got, "US")
	if err != nil {
		t.Fatalf("second NormalizePhone: %v", err)
	}
	if again != got {
		t.Errorf("not idempotent: %q != %q", again, got)
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	v := newValidator()
	cases := []struct {
		raw, region string
	}{
		{"12345", "US"},         // too short
		{"not a phone", "US"},   // unparseable
		{"+5491133334444", "US"}, // valid AR number, wrong region
	}
	for _, c := range cases {
		if _, err := v.NormalizePhone(c.raw, c.region); err == nil {
			t.Errorf("NormalizePhone(%q, %q): expected error", c.raw, c.region)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2024-03-01", "10:00")
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	if got != "2024-03-01 10:00" {
		t.Errorf("got %q", got)
	}
}

func TestCombineDateTimeInvalid(t *testing.T) {
	cases := [][2]string{
		{"2024-02-30", "10:00"}, // no such calendar day
		{"2024-13-01", "10:00"},
		{"2024-03-01", "25:00"},
		{"01/03/2024", "10:00"},
		{"", ""},
	}
	for _, c := range cases {
		_, err := CombineDateTime(c[0], c[1])
		if err == nil {
			t.Errorf("CombineDateTime(%q, %q): expected error", c[0], c[1])
			continue
		}
		if !strings.Contains(err.Error(), "2006-01-02") {
			t.Errorf("error should cite expected formats, got %v", err)
		}
	}
}
