// Package github implements the outbound half of the login flow: exchanging
// a one-time authorization code for a bearer access token, and fetching the
// authenticated account's profile with it.
//
// Neither the authorization code nor the access token is ever logged or
// persisted; both live only for the duration of a single flow.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTokenURL   = "https://github.com/login/oauth/access_token"
	DefaultAPIBaseURL = "https://api.github.com"
)

var (
	// ErrTokenExchange covers transport failures, non-success statuses and
	// responses without an access token. Codes are single-use, so callers
	// must not retry.
	ErrTokenExchange = errors.New("github: token exchange failed")

	// ErrProfileFetch covers failures of the authenticated /user call.
	ErrProfileFetch = errors.New("github: profile fetch failed")
)

// Profile is the normalized subset of GitHub's /user representation that the
// login flow consumes. Name may be empty; GitHub returns null for accounts
// without a display name.
type Profile struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
	PublicRepos int64  `json:"public_repos"`
}

// Config carries the OAuth app credentials and optional endpoint overrides.
// The URLs only change in tests, which point them at a stub server.
type Config struct {
	ClientID     string
	ClientSecret string

	TokenURL   string // defaults to DefaultTokenURL
	APIBaseURL string // defaults to DefaultAPIBaseURL

	HTTPClient *http.Client // defaults to a client with a 10s timeout
}

// Client talks to GitHub's OAuth and REST endpoints.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	apiBaseURL   string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		apiBaseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		httpClient:   cfg.HTTPClient,
	}

	if c.tokenURL == "" {
		c.tokenURL = DefaultTokenURL
	}
	if c.apiBaseURL == "" {
		c.apiBaseURL = DefaultAPIBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return c
}

// ExchangeCode redeems a one-time authorization code for a bearer access
// token. GitHub takes the parameters as query values rather than an RFC 6749
// form body, and only returns JSON when asked via the Accept header.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("client_id", c.clientID)
	q.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return "", fmt.Errorf("%w: unexpected status %d", ErrTokenExchange, resp.StatusCode)
	}

	// GitHub reports invalid codes as 200 with an error field, so a missing
	// access_token is the real failure signal.
	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTokenExchange, err)
	}
	if payload.AccessToken == "" {
		if payload.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrTokenExchange, payload.Error)
		}
		return "", fmt.Errorf("%w: no access token in response", ErrTokenExchange)
	}

	return payload.AccessToken, nil
}

// FetchProfile retrieves the authenticated account via GET /user.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/user", nil)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return Profile{}, fmt.Errorf("%w: unexpected status %d", ErrProfileFetch, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("%w: decode response: %v", ErrProfileFetch, err)
	}
	if profile.ID == 0 || profile.Login == "" {
		return Profile{}, fmt.Errorf("%w: incomplete profile", ErrProfileFetch)
	}

	return profile, nil
}

// drain lets the transport reuse the connection after error responses.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}
