// Package ean13 implements the EAN-13 mod-10 checksum.
package ean13

import (
	dErrors "scanid/pkg/domain-errors"
)

// ErrInvalidFormat is returned when checksum input is not exactly 12 ASCII
// digits. No clamping or padding is attempted.
var ErrInvalidFormat = dErrors.New(dErrors.CodeInvalidInput, "ean13 checksum input must be exactly 12 ASCII digits")

// CheckDigit computes the 13th digit for a 12-digit payload. Counting 0-based
// from the left, digits at odd positions weigh x3 and the rest x1; the check
// digit is (10 - sum mod 10) mod 10.
func CheckDigit(twelveDigits string) (byte, error) {
	if len(twelveDigits) != 12 {
		return 0, ErrInvalidFormat
	}

	sum := 0
	for i := 0; i < 12; i++ {
		c := twelveDigits[i]
		if c < '0' || c > '9' {
			return 0, ErrInvalidFormat
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}

	return byte('0' + (10-sum%10)%10), nil
}

// IsValid reports whether code is a well-formed EAN-13: exactly 13 ASCII
// digits whose final digit matches the checksum of the first twelve. Never
// errors; malformed input is simply not a valid EAN-13.
func IsValid(code string) bool {
	if len(code) != 13 {
		return false
	}
	check, err := CheckDigit(code[:12])
	if err != nil {
		return false
	}
	return code[12] == check
}
