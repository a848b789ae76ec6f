package auth

import (
	"context"

	"github.com/swtmply/hati-tayo/internal/models"
)

// Authenticator is the identity-provider boundary. Swapping auth methods
// (password, OAuth, passkeys) means swapping this implementation; the rest
// of the system only ever sees a stable user id.
type Authenticator interface {
	// Register creates a new account for the given email and credential.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
