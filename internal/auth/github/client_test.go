package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExchangeCode(t *testing.T) {
	t.Run("redeems a valid code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Accept"))

			q := r.URL.Query()
			require.Equal(t, "abc123", q.Get("code"))
			require.Equal(t, "client-id", q.Get("client_id"))
			require.Equal(t, "client-secret", q.Get("client_secret"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok_1","token_type":"bearer","scope":""}`))
		}))
		defer srv.Close()

		client := NewClient(Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			TokenURL:     srv.URL,
		})

		token, err := client.ExchangeCode(context.Background(), "abc123")
		require.NoError(t, err)
		require.Equal(t, "tok_1", token)
	})

	t.Run("rejects an error body behind a 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`))
		}))
		defer srv.Close()

		client := NewClient(Config{TokenURL: srv.URL})

		_, err := client.ExchangeCode(context.Background(), "expired")
		require.ErrorIs(t, err, ErrTokenExchange)
		require.Contains(t, err.Error(), "bad_verification_code")
	})

	t.Run("rejects a non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(Config{TokenURL: srv.URL})

		_, err := client.ExchangeCode(context.Background(), "abc123")
		require.ErrorIs(t, err, ErrTokenExchange)
	})

	t.Run("rejects a response without an access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(Config{TokenURL: srv.URL})

		_, err := client.ExchangeCode(context.Background(), "abc123")
		require.ErrorIs(t, err, ErrTokenExchange)
	})

	t.Run("rejects an unreachable endpoint", func(t *testing.T) {
		client := NewClient(Config{TokenURL: "http://127.0.0.1:0"})

		_, err := client.ExchangeCode(context.Background(), "abc123")
		require.ErrorIs(t, err, ErrTokenExchange)
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("fetches the authenticated account", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/user", r.URL.Path)
			require.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": 42,
				"login": "octocat",
				"name": "The Octocat",
				"avatar_url": "https://avatars.example/u/42",
				"followers": 10,
				"following": 5,
				"public_repos": 8
			}`))
		}))
		defer srv.Close()

		client := NewClient(Config{APIBaseURL: srv.URL})

		profile, err := client.FetchProfile(context.Background(), "tok_1")
		require.NoError(t, err)
		require.Equal(t, Profile{
			ID:          42,
			Login:       "octocat",
			Name:        "The Octocat",
			AvatarURL:   "https://avatars.example/u/42",
			Followers:   10,
			Following:   5,
			PublicRepos: 8,
		}, profile)
	})

	t.Run("treats a null name as empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 42, "login": "octocat", "name": null}`))
		}))
		defer srv.Close()

		client := NewClient(Config{APIBaseURL: srv.URL})

		profile, err := client.FetchProfile(context.Background(), "tok_1")
		require.NoError(t, err)
		require.Equal(t, "octocat", profile.Login)
		require.Empty(t, profile.Name)
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Bad credentials"}`))
		}))
		defer srv.Close()

		client := NewClient(Config{APIBaseURL: srv.URL})

		_, err := client.FetchProfile(context.Background(), "revoked")
		require.ErrorIs(t, err, ErrProfileFetch)
	})

	t.Run("rejects a profile without an id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"login":"octocat"}`))
		}))
		defer srv.Close()

		client := NewClient(Config{APIBaseURL: srv.URL})

		_, err := client.FetchProfile(context.Background(), "tok_1")
		require.ErrorIs(t, err, ErrProfileFetch)
	})
}
