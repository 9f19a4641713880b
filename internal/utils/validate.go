package utils

import "regexp"

var (
	phoneRegex  = regexp.MustCompile(`^\d{10}$`)
	postalRegex = regexp.MustCompile(`^\d{6}$`)
	emailRegex  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// ValidPhone reports whether s is exactly 10 digits.
func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// ValidPostalCode reports whether s is exactly 6 digits.
func ValidPostalCode(s string) bool {
	return postalRegex.MatchString(s)
}

func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
