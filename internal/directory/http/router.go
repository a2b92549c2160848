package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/service"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/httpx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	InviteService       *service.InviteService
	RegistrationService *service.RegistrationService
	DispatchService     *service.DispatchService
	AccountService      *service.AccountService
	AdminService        *service.AdminService
	CourseService       *service.CourseService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAlumni()
	r.registerInvites()
	r.registerEmail()
	r.registerAdmins()
	r.registerCourses()
	r.registerSystem()
}

// verifier adapts the admin service's token check to the authn middleware.
func (r *Router) verifier() httpx.TokenVerifier {
	return r.AdminService.VerifyToken
}

func (r *Router) registerAlumni() {
	h := &AlumniHandler{
		RegistrationService: r.RegistrationService,
		AccountService:      r.AccountService,
	}

	// POST /alumni - public signup endpoint, strict rate limit by IP
	r.Mux.Handle("POST /api/v1/alumni",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login/alumni - authentication attempts, strict rate limit
	r.Mux.Handle("POST /api/v1/login/alumni",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Public directory reads, lenient limit
	r.Mux.Handle("GET /api/v1/alumni",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/alumni/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Profile updates, moderate limit
	r.Mux.Handle("PUT /api/v1/alumni/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// DELETE /alumni/{id} - admin operation
	r.Mux.Handle("DELETE /api/v1/alumni/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /api/v1/invites",
		httpx.Chain(http.HandlerFunc(h.HandleMint),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/invites",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/v1/invites",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerEmail() {
	h := &EmailHandler{DispatchService: r.DispatchService}

	r.Mux.Handle("POST /api/v1/email/send",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmins() {
	h := &AdminsHandler{AdminService: r.AdminService}

	// POST /login/admin - authentication attempts, strict rate limit
	r.Mux.Handle("POST /api/v1/login/admin",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /admins - provisioning, strict rate limit
	r.Mux.Handle("POST /api/v1/admins",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Admin lookups require a session
	r.Mux.Handle("GET /api/v1/admins",
		httpx.Chain(http.HandlerFunc(h.HandleGetByUsername),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/admins/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCourses() {
	h := &CoursesHandler{CourseService: r.CourseService}

	r.Mux.Handle("GET /api/v1/courses",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/courses",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier()),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
