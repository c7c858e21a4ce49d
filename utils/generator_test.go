package utils

import (
	"regexp"
	"testing"
)

func TestGenerateBookingID(t *testing.T) {
	pattern := regexp.MustCompile(`^BK\d{6}$`)
	for i := 0; i < 10; i++ {
		id := GenerateBookingID()
		if !pattern.MatchString(id) {
			t.Fatalf("booking id %q does not match BK + 6 digits", id)
		}
	}
}

func TestGenerateOTPCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 10; i++ {
		code := GenerateOTPCode()
		if !pattern.MatchString(code) {
			t.Fatalf("otp code %q is not 6 digits", code)
		}
	}
}
