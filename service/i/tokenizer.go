package i

import (
	"time"

	"github.com/google/uuid"
)

// Claims identify the user a token was issued to.
type Claims struct {
	UserID   uuid.UUID
	Username string
}

// Tokenizer defines methods for generating and decoding tokens.
type Tokenizer interface {
	// Generate creates a token for the given claims, valid for expTime.
	Generate(claims Claims, expTime time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (Claims, error)
}
