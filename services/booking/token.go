package booking

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

const confirmationTokenLength = 10

// NewConfirmationToken generates the single-use token bound to a session's
// final summary. Collision resistance across concurrently open sessions is the
// requirement, not unforgeability.
func NewConfirmationToken() (string, error) {
	numBytes := (confirmationTokenLength*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > confirmationTokenLength {
		token = token[:confirmationTokenLength]
	}
	return token, nil
}

// VerifyConfirmationToken checks a supplied token against the session's stored
// one. It fails closed: a nil session, a missing stored token, an empty
// supplied token, or a mismatch all verify as false.
func VerifyConfirmationToken(sess *models.GuestSession, supplied string) bool {
	if sess == nil || supplied == "" {
		return false
	}
	stored := sess.Data.ConfirmationToken
	if stored == "" {
		return false
	}
	return stored == supplied
}
