package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ClassCodeAlphabet is the character set for classroom join codes.
const ClassCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ClassCodeLength is the fixed length of a classroom join code.
const ClassCodeLength = 6

var codeRng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateClassCode produces one join-code candidate. Uniqueness is not
// guaranteed here: the caller inserts under the unique index on the
// code column and regenerates on a duplicate-key conflict.
func GenerateClassCode() string {
	code := make([]byte, ClassCodeLength)
	for i := range code {
		code[i] = ClassCodeAlphabet[codeRng.Intn(len(ClassCodeAlphabet))]
	}
	return string(code)
}

// GenerateSecureToken returns a random token for email confirmation and
// password reset links. Only the sha256 hash is persisted; the raw
// value goes out in the email.
func GenerateSecureToken() string {
	return uuid.NewString()
}

// HashToken returns the hex sha256 digest stored in place of raw tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
