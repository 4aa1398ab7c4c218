package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/jwtx"
	"github.com/aussiebroadwan/rbac/pkg/slogx"

	_ "github.com/aussiebroadwan/rbac/api/rbac" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService        *service.AuthService
	RolesService       *service.RolesService
	AssignmentsService *service.AssignmentsService
	UsersService       *service.UsersService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MaxBytes(maxBodyBytes),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRoles()
	r.registerUserRoles()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP applies the global middleware chain.
//
//	@title			RBAC Management Service API
//	@version		0.1.0
//	@description	Role-based access control backend: issues access tokens, stores roles and assigns them to users.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs and can be verified with the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rbac
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured requires a bearer token and limits per user.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// Keyed on IP and username against credential stuffing.
	r.Mux.Handle("POST /login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("POST /roles", r.secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /roles/{id}", r.secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("GET /roles", r.secured(http.HandlerFunc(h.HandleList)))
}

func (r *Router) registerUserRoles() {
	h := &UserRolesHandler{AssignmentsService: r.AssignmentsService}

	r.Mux.Handle("POST /user_roles/{user_id}/{role_id}", r.secured(h))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UsersService:       r.UsersService,
		AssignmentsService: r.AssignmentsService,
	}

	r.Mux.Handle("POST /users", r.secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /users/{id}/roles", r.secured(http.HandlerFunc(h.HandleListRoles)))
}

func (r *Router) registerSystem() {
	public := func(h http.Handler) http.Handler {
		return httpx.Chain(h, httpx.RateLimitByIP(httpx.PublicLimit))
	}

	r.Mux.Handle("GET /livez", public(LivezHandler(r.startTime, r.buildVersion)))
	r.Mux.Handle("GET /readyz", public(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys)))
	r.Mux.Handle("GET /.well-known/jwks.json", public(JWKSHandler(r.keys)))
}
