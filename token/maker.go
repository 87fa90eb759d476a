package token

import (
	"time"

	"github.com/google/uuid"
)

// Maker is the contract for anything that can create and verify tokens, so
// the token scheme can change without touching the middleware or controllers.
type Maker interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)

	VerifyToken(token string) (*Payload, error)
}
