package projects

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewPublicID returns an opaque project identifier, "forless-3f9a21c4b07d".
// The id carries no meaning; collisions are resolved by the caller retrying
// against the unique constraint on projects.public_id.
func NewPublicID(prefix string) (string, error) {
	var buf [6]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(buf[:])), nil
}
