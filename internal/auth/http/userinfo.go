package http

import (
	"errors"
	"net/http"

	"github.com/emberchat/ember/internal/auth/domain"
	"github.com/emberchat/ember/internal/auth/service"
	"github.com/emberchat/ember/internal/auth/store"
	"github.com/emberchat/ember/pkg/authsdk"
	"github.com/emberchat/ember/pkg/httpx"
	"github.com/emberchat/ember/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Get user information
//	@Description	Returns the user record behind the presented session token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserPayload	"User information"
//	@Failure		401	{object}	authsdk.APIError	"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.APIError	"Internal server error"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		// A valid token for a row that no longer exists means the account
		// was removed after the token was minted.
		if errors.Is(err, store.ErrNotFound) {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Warn("failed to load user", "user_id", userID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userPayload(user))
}

func userPayload(u domain.User) authsdk.UserPayload {
	return authsdk.UserPayload{
		ID:          u.ID,
		GitHubID:    u.GitHubID,
		Login:       u.Login,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Followers:   u.Followers,
		Following:   u.Following,
		PublicRepos: u.PublicRepos,
	}
}
