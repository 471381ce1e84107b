package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * The service runs in a container built from cmd/auth/Dockerfile; GitHub is
 * replaced by a stub running on the host, reached from the container via
 * host.testcontainers.internal.
 */

const (
	testImageName = "ember-auth-test:latest"

	testJWTSecret = "e2e-0123456789abcdef0123456789abcdef"
	testIssuer    = "ember-auth-e2e"

	validCode   = "abc123"
	accessToken = "tok_1"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// githubStub fakes GitHub's OAuth and API endpoints on a host port the
// container can reach.
type githubStub struct {
	srv  *http.Server
	port int

	exchangeCalls atomic.Int64
	profileCalls  atomic.Int64
}

func startGitHubStub(t *testing.T) *githubStub {
	t.Helper()

	stub := &githubStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		stub.exchangeCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("code") != validCode {
			json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": accessToken, "token_type": "bearer"})
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		stub.profileCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+accessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":           42,
			"login":        "octocat",
			"name":         "The Octocat",
			"avatar_url":   "https://avatars.example/u/42",
			"followers":    10,
			"following":    5,
			"public_repos": 8,
		})
	})

	// Bind all interfaces so the container can reach the stub.
	listener, err := net.Listen("tcp", "0.0.0.0:0")
	require.NoError(t, err)
	stub.port = listener.Addr().(*net.TCPAddr).Port

	stub.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 3 * time.Second}
	go func() { _ = stub.srv.Serve(listener) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = stub.srv.Shutdown(ctx)
	})

	return stub
}

// setupAuthContainer starts the auth service in a container wired to the
// given GitHub stub and returns the base URL.
func setupAuthContainer(t *testing.T, stub *githubStub) (string, func()) {
	return setupAuthContainerWithEnv(t, stub, map[string]string{
		// Relaxed limits so tests making rapid requests don't trip them.
		"RATELIMIT_STRICT_REQUESTS":  "1000",
		"RATELIMIT_STRICT_BURST":     "1000",
		"RATELIMIT_LENIENT_REQUESTS": "1000",
		"RATELIMIT_LENIENT_BURST":    "1000",
	})
}

// setupAuthContainerWithDefaultRateLimits keeps production rate limits, for
// testing that rate limiting actually works.
func setupAuthContainerWithDefaultRateLimits(t *testing.T, stub *githubStub) (string, func()) {
	return setupAuthContainerWithEnv(t, stub, nil)
}

func setupAuthContainerWithEnv(t *testing.T, stub *githubStub, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	stubBase := fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, stub.port)

	env := map[string]string{
		"JWT_SECRET":           testJWTSecret,
		"AUTH_ISSUER":          testIssuer,
		"AUTH_DATABASE_FILE":   "/tmp/auth.db",
		"GITHUB_CLIENT_ID":     "e2e-client-id",
		"GITHUB_CLIENT_SECRET": "e2e-client-secret",
		"GITHUB_TOKEN_URL":     stubBase + "/login/oauth/access_token",
		"GITHUB_API_URL":       stubBase,
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:           testImageName,
		ExposedPorts:    []string{"8080/tcp"},
		HostAccessPorts: []int{stub.port},
		Env:             env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}
