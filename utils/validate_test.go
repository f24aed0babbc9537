package utils

import "testing"

func TestValidPhone(t *testing.T) {
	valid := []string{"9876543210", "0000000000"}
	invalid := []string{"", "12345", "98765432101", "98765abcde", "+919876543210"}

	for _, p := range valid {
		if !ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = true, want false", p)
		}
	}
}

func TestValidAadhaar(t *testing.T) {
	if !ValidAadhaar("123456789012") {
		t.Error("expected 12-digit aadhaar to be valid")
	}
	for _, a := range []string{"", "12345678901", "1234567890123", "12345678901a"} {
		if ValidAadhaar(a) {
			t.Errorf("ValidAadhaar(%q) = true, want false", a)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "someone@example.com"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@c.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}

func TestValidSKU(t *testing.T) {
	if !ValidSKU("RICE25KG") {
		t.Error("expected alphanumeric SKU to be valid")
	}
	for _, s := range []string{"", "ab", "ABC-123", "has space"} {
		if ValidSKU(s) {
			t.Errorf("ValidSKU(%q) = true, want false", s)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID(42); got != "42" {
		t.Errorf("ShortID(42) = %q, want 42", got)
	}
	if got := ShortID(1234567890); got != "12345678" {
		t.Errorf("ShortID(1234567890) = %q, want 12345678", got)
	}
}
