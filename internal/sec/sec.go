// Package sec provides the credential and response-hardening primitives for
// the web application and CLI.
//
// # Credentials
//
// Passwords travel as a caller-owned [Secret] buffer. [Hasher.Hash] derives a
// self-describing digest (bcrypt by default, argon2id optionally) and
// [Hasher.Verify] checks a candidate against one. Both zero the buffer they are
// given on every return path, including panics. bcrypt itself appends a NUL
// terminator to a private copy of the password that this package cannot reach,
// so that copy lives until the garbage collector reclaims it. argon2id keys
// derived during verification are cleared.
//
// Stored bcrypt digests above [MaxCost] fail verification without running the
// key schedule.
//
// Verification failures are a bare false: a malformed digest, an unknown
// algorithm, and a wrong password are indistinguishable to the caller.
//
// # Authentication
//
// [Login] checks a username and password against the user store and
// [Authenticate] does the same for HTTP Basic credentials. All failures
// collapse to [ErrInvalidCredentials].
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in transit.
//
// # Response headers
//
// [SecurityHeaders] is the fixed header policy stamped on every response.
package sec

const (
	// ErrHashingFailure is wrapped by every error returned from [Hasher.Hash].
	// A digest accompanying this error must never be persisted.
	ErrHashingFailure Error = "password hashing failed"
	// ErrInvalidCredentials is returned by [Login] and [Authenticate] for any
	// failure.
	ErrInvalidCredentials Error = "invalid username or password"
)

// Error is an error type returned by this package.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }
