// Package auth is the identity collaborator: it registers accounts, verifies
// credentials and issues the session tokens the RPC layer trusts.
package auth

import (
	"context"

	"github.com/MacDuki/sharedShop/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new account and its user profile.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user's profile.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error

	DisplayNameSyncer
}

// DisplayNameSyncer receives profile name changes so the identity record
// shows the same name as the profile.
type DisplayNameSyncer interface {
	SyncDisplayName(ctx context.Context, userID, displayName string) error
}
