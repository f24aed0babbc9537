package utils

import (
	"regexp"
	"strconv"
)

var (
	phoneRegex   = regexp.MustCompile(`^\d{10}$`)
	aadhaarRegex = regexp.MustCompile(`^\d{12}$`)
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// SKU: alphanumeric, at least 3 chars
	skuRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,}$`)
)

func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func ValidAadhaar(aadhaar string) bool {
	return aadhaarRegex.MatchString(aadhaar)
}

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidSKU(sku string) bool {
	return skuRegex.MatchString(sku)
}

// ShortID renders an id the way bill numbers show it: at most 8 characters.
func ShortID(id uint) string {
	s := strconv.FormatUint(uint64(id), 10)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
