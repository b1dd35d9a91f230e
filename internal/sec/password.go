package sec

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm identifies the one-way function used to derive a digest.
type Algorithm string

// Supported algorithms.
const (
	Bcrypt   Algorithm = "bcrypt"
	Argon2id Algorithm = "argon2id"
)

// DefaultCost is the bcrypt work factor (2^12 rounds) used when none is set.
const DefaultCost = 12

// MaxCost is the highest bcrypt work factor accepted for hashing or
// verification. A stored digest above it is treated as malformed rather than
// spending 2^cost rounds on it.
const MaxCost = 16

// argon2id parameters. The digest records them so they can change without
// invalidating stored credentials.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	argonMaxTime    = 16
	argonMaxMemory  = 512 * 1024
	argonMinKeyLen  = 16
	argonMaxKeyLen  = 64
	argonDigestPart = 6 // "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
)

var b64 = base64.RawStdEncoding

// DefaultHasher is the bcrypt hasher at [DefaultCost].
var DefaultHasher = Hasher{Algorithm: Bcrypt, Cost: DefaultCost}

// Hasher derives and verifies password digests. The zero value hashes with
// bcrypt at [DefaultCost]. A Hasher holds no mutable state and is safe for
// concurrent use.
type Hasher struct {
	// Algorithm used by Hash. Verify accepts any supported algorithm.
	Algorithm Algorithm
	// Cost is the bcrypt work factor. Ignored for argon2id.
	Cost int
}

// NewHasher validates the algorithm and cost and returns a Hasher.
func NewHasher(algo Algorithm, cost int) (Hasher, error) {
	h := Hasher{Algorithm: algo, Cost: cost}
	if err := h.validate(); err != nil {
		return Hasher{}, err
	}
	return h.normalize(), nil
}

// HashPassword hashes secret with [DefaultHasher]. The secret is zeroed before
// returning.
func HashPassword(secret Secret) ([]byte, error) {
	return DefaultHasher.Hash(secret)
}

// VerifyPassword reports whether candidate matches digest. The candidate is
// zeroed before returning.
func VerifyPassword(candidate Secret, digest []byte) bool {
	return DefaultHasher.Verify(candidate, digest)
}

// Hash derives a salted digest from secret. The secret is zeroed on every
// return path. Failures wrap [ErrHashingFailure] and must not be stored.
func (h Hasher) Hash(secret Secret) (digest []byte, err error) {
	defer secret.Zero()
	defer func() {
		if r := recover(); r != nil {
			digest, err = nil, ErrHashingFailure
		}
	}()

	if err = h.validate(); err != nil {
		return nil, err
	}
	h = h.normalize()

	switch h.Algorithm {
	case Argon2id:
		digest, err = hashArgon2id(secret)
	default:
		digest, err = bcrypt.GenerateFromPassword(secret, h.Cost)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}
	return digest, nil
}

// Verify reports whether candidate produces digest. Malformed digests,
// unknown algorithms, and mismatches all yield false. The candidate is zeroed
// on every return path.
func (h Hasher) Verify(candidate Secret, digest []byte) (ok bool) {
	defer candidate.Zero()
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	switch DetectAlgorithm(digest) {
	case Bcrypt:
		if cost, err := bcrypt.Cost(digest); err != nil || cost > MaxCost {
			return false
		}
		return bcrypt.CompareHashAndPassword(digest, candidate) == nil
	case Argon2id:
		return verifyArgon2id(candidate, digest)
	default:
		return false
	}
}

// NeedsRehash reports whether digest was produced with a different algorithm
// or cost than h would use today. Unparsable digests need a rehash.
func (h Hasher) NeedsRehash(digest []byte) bool {
	h = h.normalize()
	algo := DetectAlgorithm(digest)
	if algo != h.Algorithm {
		return true
	}
	if algo == Bcrypt {
		cost, err := bcrypt.Cost(digest)
		return err != nil || cost != h.Cost
	}
	_, err := parseArgon2id(digest)
	return err != nil
}

// DetectAlgorithm returns the algorithm tag of digest, or "" if unrecognized.
func DetectAlgorithm(digest []byte) Algorithm {
	switch {
	case bytes.HasPrefix(digest, []byte("$argon2id$")):
		return Argon2id
	case bytes.HasPrefix(digest, []byte("$2a$")),
		bytes.HasPrefix(digest, []byte("$2b$")),
		bytes.HasPrefix(digest, []byte("$2y$")):
		return Bcrypt
	default:
		return ""
	}
}

func (h Hasher) normalize() Hasher {
	if h.Algorithm == "" {
		h.Algorithm = Bcrypt
	}
	if h.Cost == 0 {
		h.Cost = DefaultCost
	}
	return h
}

func (h Hasher) validate() error {
	h = h.normalize()
	switch h.Algorithm {
	case Bcrypt:
		if h.Cost < bcrypt.MinCost || h.Cost > MaxCost {
			return fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]",
				ErrHashingFailure, h.Cost, bcrypt.MinCost, MaxCost)
		}
		return nil
	case Argon2id:
		return nil
	default:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrHashingFailure, h.Algorithm)
	}
}

type argonParams struct {
	time, memory uint32
	threads      uint8
	salt, key    []byte
}

func hashArgon2id(secret Secret) ([]byte, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	defer clear(key)
	return fmt.Appendf(nil, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key),
	), nil
}

func verifyArgon2id(candidate Secret, digest []byte) bool {
	params, err := parseArgon2id(digest)
	if err != nil {
		return false
	}
	key := argon2.IDKey(candidate, params.salt, params.time, params.memory, params.threads, uint32(len(params.key))) //nolint:gosec // bounded by parseArgon2id
	defer clear(key)
	return subtle.ConstantTimeCompare(key, params.key) == 1
}

// parseArgon2id decodes the PHC-style string written by hashArgon2id. Limits
// keep a hostile digest from demanding unbounded memory or time.
func parseArgon2id(digest []byte) (params argonParams, err error) {
	errMalformed := Error("malformed argon2id digest")

	parts := strings.Split(string(digest), "$")
	if len(parts) != argonDigestPart || parts[1] != string(Argon2id) {
		return params, errMalformed
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, errMalformed
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, errMalformed
	}
	if params.time == 0 || params.time > argonMaxTime ||
		params.memory == 0 || params.memory > argonMaxMemory ||
		params.threads == 0 {
		return params, errMalformed
	}
	if params.salt, err = b64.DecodeString(parts[4]); err != nil || len(params.salt) == 0 {
		return params, errMalformed
	}
	if params.key, err = b64.DecodeString(parts[5]); err != nil ||
		len(params.key) < argonMinKeyLen || len(params.key) > argonMaxKeyLen {
		return params, errMalformed
	}
	return params, nil
}
