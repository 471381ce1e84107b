package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/emberchat/ember/internal/auth/service"
	"github.com/emberchat/ember/pkg/authsdk"
	"github.com/emberchat/ember/pkg/httpx"
	"github.com/emberchat/ember/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/github.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		GitHub Login Endpoint
//	@Description	Exchanges a one-time GitHub authorization code for a 24-hour session token.
//	@Description	On first login a local user is created from the GitHub profile; later logins return the stored user.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Authorization code from GitHub's OAuth redirect"
//	@Success		200		{object}	authsdk.SessionResponse	"token, user"
//	@Failure		400		{object}	authsdk.APIError		"error, error_description"
//	@Failure		401		{object}	authsdk.APIError		"error, error_description"
//	@Failure		502		{object}	authsdk.APIError		"error, error_description"
//	@Failure		500		{object}	authsdk.APIError		"error, error_description"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/github [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/json") {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req authsdk.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	session, err := h.AuthService.Authenticate(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpstreamAuth):
			authsdk.ErrUpstreamAuth.WriteError(w)
		case errors.Is(err, service.ErrUpstreamProfile):
			authsdk.ErrUpstreamProfile.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
		Token: session.Token,
		User:  userPayload(session.User),
	})
}
