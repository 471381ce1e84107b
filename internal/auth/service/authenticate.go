// Package service contains the business logic of the login flow, wired
// between the HTTP handlers, the GitHub client and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emberchat/ember/internal/auth/domain"
	"github.com/emberchat/ember/internal/auth/github"
	"github.com/emberchat/ember/internal/auth/store"
	"github.com/emberchat/ember/pkg/idx"
	"github.com/emberchat/ember/pkg/jwtx"
	"github.com/emberchat/ember/pkg/slogx"
)

var (
	// ErrUpstreamAuth means GitHub rejected the authorization code. The code
	// is single-use, so the client must restart the flow to get a fresh one.
	ErrUpstreamAuth = errors.New("upstream_auth_failed")

	// ErrUpstreamProfile means the code was redeemed but the profile fetch
	// failed. No user row is created or modified in this case.
	ErrUpstreamProfile = errors.New("upstream_profile_failed")
)

// AuthService turns a GitHub authorization code into a local session.
type AuthService struct {
	GitHub *github.Client
	Store  store.Store
	Signer jwtx.Signer

	// Issuer is stamped into every session token's iss claim.
	Issuer string

	// SessionTTL defaults to jwtx.DefaultSessionTTL when zero.
	SessionTTL time.Duration
}

// Authenticate runs the full login pipeline: redeem the code, fetch the
// profile, find or create the local user and mint a session token. The
// pipeline is strictly ordered; any failure aborts before the next step, so
// an invalid code never reaches GitHub's API or the store.
func (s *AuthService) Authenticate(ctx context.Context, code string) (*domain.Session, error) {
	log := slogx.FromContext(ctx)

	accessToken, err := s.GitHub.ExchangeCode(ctx, code)
	if err != nil {
		log.Warn("github code exchange failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}

	profile, err := s.GitHub.FetchProfile(ctx, accessToken)
	if err != nil {
		log.Warn("github profile fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamProfile, err)
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(jwtx.SessionUser{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, s.Issuer, ttl, time.Now().UTC())

	sessionToken, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	log.Info("user authenticated", "user_id", user.ID, "github_id", user.GitHubID)

	return &domain.Session{
		Token: sessionToken,
		User:  user,
	}, nil
}

// findOrCreateUser resolves the local user for a GitHub account, creating it
// on first login. The user row is written exactly once; later logins return
// the stored snapshot untouched, so a rename or avatar change on GitHub does
// not propagate here.
func (s *AuthService) findOrCreateUser(ctx context.Context, profile github.Profile) (domain.User, error) {
	users := s.Store.Users()

	user, err := users.GetUserByGitHubID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup user by github id: %w", err)
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:          idx.New().String(),
		GitHubID:    profile.ID,
		Login:       profile.Login,
		Name:        name,
		AvatarURL:   profile.AvatarURL,
		Followers:   profile.Followers,
		Following:   profile.Following,
		PublicRepos: profile.PublicRepos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = users.CreateUser(ctx, user)
	if err == nil {
		slogx.FromContext(ctx).Info("user created", "user_id", user.ID, "github_id", user.GitHubID)
		return user, nil
	}

	// A concurrent first login for the same account won the insert. The
	// unique index on github_id guarantees a row now exists, so read it.
	if errors.Is(err, store.ErrAlreadyExists) {
		return users.GetUserByGitHubID(ctx, profile.ID)
	}

	return domain.User{}, fmt.Errorf("create user: %w", err)
}
