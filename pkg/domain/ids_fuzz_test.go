package domain

import (
	"testing"

	"github.com/google/uuid"
)

// FuzzParseOrganizationID checks that parsing never panics and that every
// accepted input round-trips to a canonical non-nil UUID string.
func FuzzParseOrganizationID(f *testing.F) {
	f.Add("")
	f.Add("not-a-uuid")
	f.Add(uuid.Nil.String())
	f.Add(uuid.New().String())

	f.Fuzz(func(t *testing.T, s string) {
		id, err := ParseOrganizationID(s)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Fatalf("accepted nil UUID from %q", s)
		}
		reparsed, err := ParseOrganizationID(id.String())
		if err != nil {
			t.Fatalf("canonical form %q failed to reparse: %v", id.String(), err)
		}
		if reparsed != id {
			t.Fatalf("round trip mismatch: %v != %v", reparsed, id)
		}
	})
}
