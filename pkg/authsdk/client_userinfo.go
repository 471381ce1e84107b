package authsdk

import (
	"context"
	"net/http"
)

// UserInfo returns the user record behind a session token.
func (c *SDKClient) UserInfo(ctx context.Context, sessionToken string) (*UserPayload, error) {
	var user UserPayload
	err := c.doJSON(ctx, http.MethodGet, "/v1/userinfo",
		nil, sessionToken, &user, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
