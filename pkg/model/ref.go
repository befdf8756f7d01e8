package model

import (
	"fmt"
)

// RefChecksums maps ref names to the checksum of the commit they are
// expected to resolve to. An empty checksum means the checksum is unknown.
type RefChecksums map[string]string

const checksumLen = 64 // hex encoded SHA-256

// IsValidRef tells whether name is a well-formed ref: non-empty and
// entirely printable ASCII.
func IsValidRef(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range []byte(name) {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// IsValidChecksum tells whether sum is a well-formed commit checksum:
// 64 lowercase hex digits. The empty string is accepted as "unknown".
func IsValidChecksum(sum string) bool {
	if sum == "" {
		return true
	}
	if len(sum) != checksumLen {
		return false
	}
	for _, c := range []byte(sum) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ValidateRefs asserts that refs is non-empty and contains only valid ref names.
func ValidateRefs(refs []string) error {
	if len(refs) == 0 {
		return fmt.Errorf("empty field: ref list is empty")
	}
	for _, ref := range refs {
		if !IsValidRef(ref) {
			return fmt.Errorf("invalid ref: %q is not a printable ASCII string", ref)
		}
	}
	return nil
}

// ValidateRefChecksums asserts that the map is non-empty, contains only
// valid ref names as keys and only valid checksums as values.
func ValidateRefChecksums(refs RefChecksums) error {
	if len(refs) == 0 {
		return fmt.Errorf("empty field: ref map is empty")
	}
	for ref, sum := range refs {
		if !IsValidRef(ref) {
			return fmt.Errorf("invalid ref: %q is not a printable ASCII string", ref)
		}
		if !IsValidChecksum(sum) {
			return fmt.Errorf("invalid checksum for ref %q: %q is not a hex encoded SHA-256", ref, sum)
		}
	}
	return nil
}

// Refs returns the ref names in the map, in unspecified order.
func (r RefChecksums) Refs() []string {
	refs := make([]string, 0, len(r))
	for ref := range r {
		refs = append(refs, ref)
	}
	return refs
}
