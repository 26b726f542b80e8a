package app

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/fleetdesk/fleetdesk/internal/auth"
	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/dashboard"
	"github.com/fleetdesk/fleetdesk/internal/observability"
	"github.com/fleetdesk/fleetdesk/internal/rental/agencies"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/rental/calendar"
	"github.com/fleetdesk/fleetdesk/internal/rental/cars"
	"github.com/fleetdesk/fleetdesk/internal/rental/clients"
	"github.com/fleetdesk/fleetdesk/internal/rental/faqs"
	"github.com/fleetdesk/fleetdesk/internal/rental/transactions"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	"github.com/fleetdesk/fleetdesk/internal/users"
	"github.com/fleetdesk/fleetdesk/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	SessionManager      *shared.SessionManager
	CSRFManager         *shared.CSRFManager
	AuthHandler         *auth.Handler
	DashboardHandler    *dashboard.Handler
	UsersHandler        *users.Handler
	AgenciesHandler     *agencies.Handler
	CarsHandler         *cars.Handler
	ClientsHandler      *clients.Handler
	BookingsHandler     *bookings.Handler
	CalendarHandler     *calendar.Handler
	TransactionsHandler *transactions.Handler
	FAQHandler          *faqs.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with FleetDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	// Login endpoints sit outside the guard; they get a tighter rate limit
	// than the global one.
	r.Route("/auth", func(r chi.Router) {
		limit, window := 10, time.Minute
		if params.Config != nil && params.Config.LoginRateLimit > 0 {
			limit, window = params.Config.LoginRateLimit, params.Config.LoginRateWindow
		}
		r.Use(httprate.Limit(limit, window, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r)
	})

	// Every screen sits behind the route guard. The guard owns the "/"
	// redirect, so the stub handler below is never reached.
	r.Group(func(r chi.Router) {
		r.Use(RouteGuard(params.Logger, params.Metrics))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {})

		r.Route(authz.PathDashboard, params.DashboardHandler.MountRoutes)
		r.Route(authz.PathUsers, params.UsersHandler.MountRoutes)
		r.Route(authz.PathAgencies, params.AgenciesHandler.MountRoutes)
		r.Route(authz.PathCars, params.CarsHandler.MountRoutes)
		r.Route(authz.PathClients, params.ClientsHandler.MountRoutes)
		r.Route(authz.PathBookings, params.BookingsHandler.MountRoutes)
		r.Route(authz.PathCalendar, params.CalendarHandler.MountRoutes)
		r.Route(authz.PathTransactions, params.TransactionsHandler.MountRoutes)
		r.Route("/settings", func(r chi.Router) {
			params.AuthHandler.MountSettingsRoutes(r)
			r.Route("/faq", params.FAQHandler.MountRoutes)
		})
	})

	// Unknown paths never 404 for browsers; they fall back to the same
	// redirect logic the guard applies.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		actor := shared.ActorFromContext(r.Context())
		decision := authz.Evaluate(actor, r.URL.Path)
		if decision.Kind == authz.DecisionAllow {
			http.NotFound(w, r)
			return
		}
		target := decision.Target
		if decision.Kind == authz.DecisionLoginRedirect && decision.From != "" && decision.From != "/" {
			target += "?from=" + url.QueryEscape(decision.From)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})

	return r
}
