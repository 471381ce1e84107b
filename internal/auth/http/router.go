// Package http wires the service layer to the HTTP surface: routing,
// middleware and request/response mapping.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/emberchat/ember/internal/auth/service"
	"github.com/emberchat/ember/internal/auth/store"
	"github.com/emberchat/ember/pkg/httpx"
	"github.com/emberchat/ember/pkg/jwtx"
	"github.com/emberchat/ember/pkg/slogx"

	_ "github.com/emberchat/ember/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Ember Authentication Service API
//	@version		0.1.0
//	@description	Sign-in-with-GitHub authentication service. Exchanges GitHub OAuth
//	@description	authorization codes for 24-hour HS256-signed session tokens.
//
//	@contact.name				Ember Team
//	@contact.url				https://github.com/emberchat/ember
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// Login burns a one-time code per attempt, so the strict limit applies.
	r.Mux.Handle("POST /v1/auth/github",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	userInfoHandler := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(userInfoHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
