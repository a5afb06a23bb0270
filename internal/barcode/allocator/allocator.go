// Package allocator builds deterministic barcode candidates and resolves them
// to a value unused within an organization at allocation time.
//
// Resolution is best-effort collision avoidance, not a uniqueness guarantee:
// two concurrent callers can both observe a candidate as free. The guarantee
// comes from the store's unique constraint; on a constraint violation the
// caller retries with a fresh start sequence (see the barcode service).
package allocator

import (
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"scanid/internal/barcode/ean13"
	"scanid/internal/barcode/models"
	dErrors "scanid/pkg/domain-errors"
)

// DefaultMaxProbes bounds the sequential probe loop. Hitting it means the
// organization's allocation space is saturated, an operational condition the
// caller must surface distinctly from a generic failure.
const DefaultMaxProbes = 10_000

var (
	// ErrExhausted is returned when every probed candidate was taken.
	ErrExhausted = dErrors.New(dErrors.CodeExhausted, "barcode allocation space exhausted")

	// ErrUnsupportedMode is returned for generation schemes the candidate
	// builder does not implement.
	ErrUnsupportedMode = dErrors.New(dErrors.CodeInvalidInput, "unsupported barcode mode")
)

// sequenceDigits is the number of low-order payload digits carrying the
// sequence. The remaining payload digits hold the organization prefix, so
// candidates are injective in the sequence for any run of up to 10^6 values,
// well beyond any probe bound.
const sequenceDigits = 6

const sequenceSpace = 1_000_000 // 10^sequenceDigits

// BuildCandidate deterministically constructs a candidate barcode for the
// given organization, mode and sequence. Identical arguments always yield the
// identical candidate. For EAN-13 the first six digits derive from a stable
// hash of the organization ID, the next six encode the sequence, and the last
// is the checksum, so the output always passes ean13.IsValid.
func BuildCandidate(organizationID string, mode models.Mode, sequence uint64) (string, error) {
	if mode != models.ModeEAN13 {
		return "", ErrUnsupportedMode
	}

	payload := fmt.Sprintf("%06d%06d", orgPrefix(organizationID), sequence%sequenceSpace)
	check, err := ean13.CheckDigit(payload)
	if err != nil {
		// Unreachable: payload is twelve ASCII digits by construction.
		return "", err
	}
	return payload + string(check), nil
}

// orgPrefix hashes the organization ID into a stable six-digit prefix.
// blake2b keys identical org IDs to identical prefixes across processes and
// restarts; distinct organizations may share a prefix, which only narrows
// their shared sequence space.
func orgPrefix(organizationID string) uint64 {
	sum := blake2b.Sum256([]byte(organizationID))
	return binary.BigEndian.Uint64(sum[:8]) % sequenceSpace
}

// SequenceOf recovers the low-order sequence digits from an EAN-13 candidate
// produced by BuildCandidate. Callers use it to restart probing past a
// candidate that lost a persistence race (failed sequence + 1).
func SequenceOf(candidate string) (uint64, error) {
	if !ean13.IsValid(candidate) {
		return 0, ean13.ErrInvalidFormat
	}
	var seq uint64
	for _, c := range candidate[sequenceDigits : 2*sequenceDigits] {
		seq = seq*10 + uint64(c-'0')
	}
	return seq, nil
}

// TakenChecker reports whether a candidate barcode already exists in the
// organization's catalog. Implementations must tolerate rapid repeated calls
// up to the probe bound.
type TakenChecker interface {
	IsTaken(ctx context.Context, candidate string) (bool, error)
}

// TakenFunc adapts a plain function to a TakenChecker.
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

func (f TakenFunc) IsTaken(ctx context.Context, candidate string) (bool, error) {
	return f(ctx, candidate)
}

type options struct {
	maxProbes int
}

// Option tunes uniqueness resolution.
type Option func(*options)

// WithMaxProbes overrides the probe bound. Non-positive values keep the
// default.
func WithMaxProbes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxProbes = n
		}
	}
}

// ResolveUnique probes candidates starting at startSequence until the checker
// reports one free, then returns it without persisting anything; persistence
// is strictly the caller's job.
//
// Probing is strictly sequential and monotonically increasing in the
// sequence: one outstanding IsTaken call at a time, sequence incremented by
// one per taken candidate. This keeps probe order deterministic for a fixed
// start and taken-set snapshot, and keeps allocated sequences roughly compact.
// The context is checked before every probe; cancellation fails with
// CodeCancelled without partial effects. After maxProbes taken candidates the
// call fails with ErrExhausted.
func ResolveUnique(ctx context.Context, organizationID string, mode models.Mode, startSequence uint64, taken TakenChecker, opts ...Option) (string, error) {
	o := options{maxProbes: DefaultMaxProbes}
	for _, opt := range opts {
		opt(&o)
	}

	sequence := startSequence
	for probe := 0; probe < o.maxProbes; probe++ {
		if err := ctx.Err(); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeCancelled, "barcode allocation cancelled")
		}

		candidate, err := BuildCandidate(organizationID, mode, sequence)
		if err != nil {
			return "", err
		}

		isTaken, err := taken.IsTaken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe candidate %s: %w", candidate, err)
		}
		if !isTaken {
			return candidate, nil
		}
		sequence++
	}

	return "", ErrExhausted
}
