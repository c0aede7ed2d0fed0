package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/jwtx"
	"github.com/opencampus/tally/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.EdDSAKeypair
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	Clock           *service.SimClock
	CodeService     *service.CodeService
	QueueService    *service.QueueService
	CheckinService  *service.CheckinService
	RewardService   *service.RewardService
	UserService     *service.UserService
	TokenService    *service.TokenService
	HostCodeService *service.HostCodeService
}

func NewRouter(
	keys *jwtx.EdDSAKeypair,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     keys,
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

func (r *Router) ApplyRoutes() {
	r.registerTime()
	r.registerCodes()
	r.registerCheckin()
	r.registerQueue()
	r.registerRewards()
	r.registerAuth()
	r.registerHost()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTime() {
	h := &TimeHandler{Clock: r.Clock}

	// The host display polls GET /time every second, so the limit stays
	// lenient. The debug switches are rehearsal tooling; moderate is plenty.
	r.Mux.Handle("GET /v1/time",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/time/debug",
		httpx.Chain(http.HandlerFunc(h.HandleEnableDebug),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/time/debug",
		httpx.Chain(http.HandlerFunc(h.HandleDisableDebug),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCodes() {
	h := &CodeHandler{Codes: r.CodeService}

	// Codes rotate every 10 seconds and the display polls for them, so both
	// endpoints need headroom above the rotation rate.
	r.Mux.Handle("POST /v1/code",
		httpx.Chain(http.HandlerFunc(h.HandleIssue),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/code",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCheckin() {
	h := &CheckinHandler{CheckinService: r.CheckinService}

	// Strict per-user limit: one check-in per day is legitimate, anything
	// rapid is code guessing.
	r.Mux.Handle("POST /v1/checkin",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerQueue() {
	h := &QueueHandler{QueueService: r.QueueService}

	r.Mux.Handle("GET /v1/queue",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRewards() {
	h := &RewardsHandler{RewardService: r.RewardService, UserService: r.UserService}

	secured := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.Mux.Handle("GET /v1/rewards", secured)

	r.Mux.Handle("POST /v1/rewards/{id}/redeem",
		httpx.Chain(http.HandlerFunc(h.HandleRedeem),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService, TokenService: r.TokenService}

	// Strict by IP: both endpoints are credential surfaces.
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	profile := &ProfileHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(profile,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerHost() {
	h := &HostHandler{
		Codes:        r.CodeService,
		HostCodes:    r.HostCodeService,
		QueueService: r.QueueService,
	}

	r.Mux.Handle("GET /v1/host",
		httpx.Chain(http.HandlerFunc(h.HandleState),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/host/qr",
		httpx.Chain(http.HandlerFunc(h.HandleQR),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
