package authsdk

// LoginRequest is the body of POST /v1/auth/github.
type LoginRequest struct {
	// Code is the one-time authorization code from GitHub's OAuth redirect.
	Code string `json:"code"`
}

// UserPayload is the public representation of a user returned by the API.
type UserPayload struct {
	ID          string `json:"id"`
	GitHubID    int64  `json:"github_id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
	PublicRepos int64  `json:"public_repos"`
}

// SessionResponse is the success body of POST /v1/auth/github.
type SessionResponse struct {
	// Token is the signed session JWT, valid for 24 hours.
	Token string `json:"token"`

	// User is the local user the session belongs to.
	User UserPayload `json:"user"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
