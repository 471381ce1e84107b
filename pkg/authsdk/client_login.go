package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges a GitHub authorization code for a session. The returned
// session token authenticates subsequent calls for 24 hours.
func (c *SDKClient) Login(ctx context.Context, code string) (*SessionResponse, error) {
	var session SessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/github",
		LoginRequest{Code: code}, "", &session, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
