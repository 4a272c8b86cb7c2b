package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/httpx"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
	"github.com/stuccorite/fieldforms/pkg/slogx"

	_ "github.com/stuccorite/fieldforms/api/portal" // Swagger docs
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

	store            store.Store
	AuthService      *service.AuthService
	TwoFactorService *service.TwoFactorService
	FormService      *service.FormService
	JobSiteService   *service.JobSiteService
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
		httpx.CORSMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTwoFactor()
	r.registerForms()
	r.registerJobSites()
	r.registerSignatures()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FieldForms Portal API
//	@version		0.1.0
//	@description	Digital jobsite forms for Stucco Rite Inc: daily logs, vehicle
//	@description	inspections, safety meetings and scaffold inspections, with PDF
//	@description	export and invite-code account registration.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService}

	// Public credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.Logout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.Me),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{
		TwoFactor: r.TwoFactorService,
		Auth:      r.AuthService,
		Verifier:  r.verifier,
	}

	r.Mux.Handle("POST /api/auth/2fa/setup",
		httpx.Chain(http.HandlerFunc(h.Setup),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/2fa/verify-setup",
		httpx.Chain(http.HandlerFunc(h.VerifySetup),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// Verify-login is public: the caller only holds a pending token,
	// carried in the body rather than the Authorization header.
	r.Mux.Handle("POST /api/auth/2fa/verify-login",
		httpx.Chain(http.HandlerFunc(h.VerifyLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/2fa/disable",
		httpx.Chain(http.HandlerFunc(h.Disable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerForms() {
	h := &FormsHandler{Forms: r.FormService, Auth: r.AuthService}

	// Forms are writable without a session so crews can submit from
	// shared tablets; a token, when present, attributes completion.
	optional := httpx.OptionalAuthn(r.verifier)

	r.Mux.Handle("POST /api/forms/{formType}",
		httpx.Chain(http.HandlerFunc(h.Create),
			optional,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/forms/{formType}",
		httpx.Chain(http.HandlerFunc(h.List),
			optional,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/forms/{formType}/{id}",
		httpx.Chain(http.HandlerFunc(h.Get),
			optional,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/forms/{formType}/{id}",
		httpx.Chain(http.HandlerFunc(h.Update),
			optional,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/forms/{formType}/{id}",
		httpx.Chain(http.HandlerFunc(h.Delete),
			optional,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/forms/{formType}/{id}/export",
		httpx.Chain(http.HandlerFunc(h.Export),
			optional,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerJobSites() {
	h := &JobSitesHandler{JobSites: r.JobSiteService}

	r.Mux.Handle("GET /api/forms/meta/job-sites",
		httpx.Chain(http.HandlerFunc(h.List),
			httpx.OptionalAuthn(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/forms/meta/job-sites/locate",
		httpx.Chain(http.HandlerFunc(h.Locate),
			httpx.OptionalAuthn(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Archiving a site needs a session so the marker records who did it.
	r.Mux.Handle("PUT /api/forms/meta/job-sites/status",
		httpx.Chain(http.HandlerFunc(h.SetStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSignatures() {
	h := &SignaturesHandler{}

	r.Mux.Handle("POST /api/signatures/upload",
		httpx.Chain(http.HandlerFunc(h.Upload),
			httpx.OptionalAuthn(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api/health",
		httpx.Chain(HealthHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
