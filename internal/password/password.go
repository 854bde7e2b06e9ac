// Package password hashes and verifies user passwords with salted PBKDF2-HMAC-SHA256.
//
// Hashes are stored as "pbkdf2:sha256:<iterations>$<salt>$<hex digest>", the layout
// werkzeug produces, so existing rows keep verifying.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 600000
	saltLength        = 16
	keyLength         = sha256.Size
	saltChars         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrMalformedHash = errors.New("password: malformed hash")

// Hasher produces new password hashes. The zero value uses DefaultIterations.
type Hasher struct {
	Iterations int
}

// NewHasher returns a Hasher with the given work factor.
func NewHasher(iterations int) *Hasher {
	return &Hasher{Iterations: iterations}
}

// Hash salts and hashes plain.
func (h *Hasher) Hash(plain string) (string, error) {
	iter := h.Iterations
	if iter <= 0 {
		iter = DefaultIterations
	}
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}
	sum := pbkdf2.Key([]byte(plain), []byte(salt), iter, keyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iter, salt, hex.EncodeToString(sum)), nil
}

// Verify reports whether plain matches the stored hash. Malformed hashes never match.
func Verify(hash, plain string) bool {
	iter, salt, want, err := parse(hash)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(salt), iter, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parse(hash string) (int, string, []byte, error) {
	parts := strings.SplitN(hash, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, ErrMalformedHash
	}
	method := strings.Split(parts[0], ":")
	if len(method) != 3 || method[0] != "pbkdf2" || method[1] != "sha256" {
		return 0, "", nil, ErrMalformedHash
	}
	iter, err := strconv.Atoi(method[2])
	if err != nil || iter <= 0 {
		return 0, "", nil, ErrMalformedHash
	}
	sum, err := hex.DecodeString(parts[2])
	if err != nil || len(sum) == 0 {
		return 0, "", nil, ErrMalformedHash
	}
	return iter, parts[1], sum, nil
}

func randomSalt(n int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(saltChars)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(saltChars[idx.Int64()])
	}
	return b.String(), nil
}
