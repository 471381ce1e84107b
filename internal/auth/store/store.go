package store

import (
	"context"
	"errors"

	"github.com/emberchat/ember/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this and expose sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by its local id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByGitHubID returns a user by the provider account id. This is
	// the lookup every login performs.
	GetUserByGitHubID(ctx context.Context, githubID int64) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when a row with the same github_id is
	// present; callers racing on first login recover by re-reading.
	CreateUser(ctx context.Context, u domain.User) error

	// CountUsers returns the total number of user rows.
	CountUsers(ctx context.Context) (int64, error)
}
