package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/internal/invites/store"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/jwtx"
	"github.com/shiftbook/shiftbook/pkg/slogx"

	_ "github.com/shiftbook/shiftbook/api/invites" // Swagger docs
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

	store             store.Store
	InvitationService *service.InvitationService
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
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Shiftbook Invitation Service API
//	@version		0.1.0
//	@description	Invitation lifecycle management for Shiftbook workplaces: minting invitation
//	@description	tokens, validating and redeeming them into user accounts, resending reminder
//	@description	emails, and cancelling outstanding invitations.
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

func (r *Router) registerInvitations() {
	createHandler := &InvitationCreateHandler{InvitationService: r.InvitationService}
	listHandler := &InvitationListHandler{InvitationService: r.InvitationService}
	getHandler := &InvitationGetHandler{InvitationService: r.InvitationService}
	validateHandler := &InvitationValidateHandler{InvitationService: r.InvitationService}
	acceptHandler := &InvitationAcceptHandler{InvitationService: r.InvitationService}
	resendHandler := &InvitationResendHandler{InvitationService: r.InvitationService}
	cancelHandler := &InvitationCancelHandler{InvitationService: r.InvitationService}

	// Administrative endpoints: authenticated, scope-checked, limited per user.
	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(createHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/invitations",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/invitations/{id}",
		httpx.Chain(getHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/resend",
		httpx.Chain(resendHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/cancel",
		httpx.Chain(cancelHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Public endpoints behind the emailed link: strict limits by IP.
	r.Mux.Handle("GET /v1/invitations/validate/{token}",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(acceptHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
