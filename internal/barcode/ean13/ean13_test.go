package ean13

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "scanid/pkg/domain-errors"
)

func TestCheckDigit(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		check, err := CheckDigit("590123412345")
		require.NoError(t, err)
		assert.Equal(t, byte('7'), check)
	})

	t.Run("all zeros", func(t *testing.T) {
		check, err := CheckDigit("000000000000")
		require.NoError(t, err)
		assert.Equal(t, byte('0'), check)
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := CheckDigit("59012341234")
		require.ErrorIs(t, err, ErrInvalidFormat)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects long input", func(t *testing.T) {
		_, err := CheckDigit("5901234123457")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		_, err := CheckDigit("59012341234X")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects non-ASCII digits", func(t *testing.T) {
		// Arabic-Indic digit; its UTF-8 bytes are outside '0'..'9'.
		_, err := CheckDigit("5901234123٤")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

// TestCheckDigit_AppendProperty verifies that for any 12-digit payload,
// appending the computed check digit yields a valid EAN-13.
func TestCheckDigit_AppendProperty(t *testing.T) {
	payloads := []string{
		"590123412345",
		"000000000000",
		"999999999999",
		"123456789012",
		"400638133393",
	}
	for _, p := range payloads {
		t.Run(p, func(t *testing.T) {
			check, err := CheckDigit(p)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, check, byte('0'))
			assert.LessOrEqual(t, check, byte('9'))
			assert.True(t, IsValid(p+string(check)))
		})
	}
}

func TestIsValid(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		assert.True(t, IsValid("5901234123457"))
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		assert.False(t, IsValid("5901234123458"))
	})

	t.Run("wrong length", func(t *testing.T) {
		assert.False(t, IsValid("590123412345"))
		assert.False(t, IsValid("59012341234570"))
		assert.False(t, IsValid(""))
	})

	t.Run("non-digit characters", func(t *testing.T) {
		assert.False(t, IsValid("SKU-ABC-00123"))
		assert.False(t, IsValid("590123412345x"))
	})
}

// FuzzCheckDigit sweeps 12-digit payloads derived from a seed number and
// asserts the append property holds for each.
func FuzzCheckDigit(f *testing.F) {
	f.Add(uint64(590123412345))
	f.Add(uint64(0))
	f.Add(uint64(999999999999))

	f.Fuzz(func(t *testing.T, n uint64) {
		payload := fmt.Sprintf("%012d", n%1_000_000_000_000)
		check, err := CheckDigit(payload)
		if err != nil {
			t.Fatalf("well-formed payload %q rejected: %v", payload, err)
		}
		if !IsValid(payload + string(check)) {
			t.Fatalf("append property violated for %q", payload)
		}
	})
}
