package domain

import "time"

// User is the locally persisted identity for a GitHub account. Exactly one
// row exists per GitHubID; the row is written once on first login and read
// on every login after that, so the profile fields are a snapshot from the
// moment the account first signed in.
type User struct {
	ID          string // ULID, local surrogate key
	GitHubID    int64  // provider account id, unique and immutable
	Login       string
	Name        string // display name; falls back to Login at creation
	AvatarURL   string
	Followers   int64
	Following   int64
	PublicRepos int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
