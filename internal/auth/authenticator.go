package auth

import (
	"context"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// Authenticator defines the interface for operator authentication.
// Implementations can swap the credential method (password, passkeys, OAuth)
// without changing the service layer.
type Authenticator interface {
	// Register creates a new operator account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.Operator, error)

	// Authenticate verifies the credentials and returns the operator if they match.
	Authenticate(ctx context.Context, email, credential string) (*models.Operator, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
