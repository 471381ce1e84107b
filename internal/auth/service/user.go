package service

import (
	"context"

	"github.com/emberchat/ember/internal/auth/domain"
	"github.com/emberchat/ember/internal/auth/store"
)

// UserService reads user records for authenticated callers.
type UserService struct {
	Store store.Store
}

// GetUser returns the user with the given local id, or store.ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}
