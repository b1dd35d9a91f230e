package sec

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

const redacted = "[SECRET]"

// Secret is a caller-owned buffer holding a password. It redacts itself when
// formatted, logged, or marshaled. The hashing and verification functions in
// this package zero it before returning.
type Secret []byte

// NewSecret copies in into a new Secret. The caller remains responsible for
// zeroing in if it is sensitive.
func NewSecret[T ~string | ~[]byte](in T) Secret {
	out := make(Secret, len(in))
	copy(out, in)
	return out
}

// Zero overwrites the buffer with zero bytes. The slice length is preserved so
// callers can confirm the scrub.
func (s Secret) Zero() { clear(s) }

// IsZero reports whether every byte of the buffer is zero.
func (s Secret) IsZero() bool {
	for _, b := range s {
		if b != 0 {
			return false
		}
	}
	return true
}

// String satisfies [fmt.Stringer].
func (s Secret) String() string { return redacted }

// Format satisfies [fmt.Formatter] so every verb is redacted.
func (s Secret) Format(f fmt.State, _ rune) { _, _ = io.WriteString(f, redacted) }

// LogValue satisfies [slog.LogValuer].
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

// MarshalJSON satisfies [json.Marshaler].
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText satisfies [encoding.TextMarshaler].
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
