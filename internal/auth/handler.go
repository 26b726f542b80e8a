package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/observability"
	"github.com/fleetdesk/fleetdesk/internal/platform/httpx"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	"github.com/fleetdesk/fleetdesk/jobs"
)

// AuditEnqueuer records auth events; nil disables auditing.
type AuditEnqueuer interface {
	EnqueueLoginAudit(ctx context.Context, payload jobs.LoginAuditPayload) error
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
	audit          AuditEnqueuer
	metrics        *observability.Metrics
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, csrf *shared.CSRFManager, audit AuditEnqueuer, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
		audit:          audit,
		metrics:        metrics,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/session", h.showSession)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

// MountSettingsRoutes registers the profile and password screens. These sit
// behind the route guard, unlike the login endpoints.
func (h *Handler) MountSettingsRoutes(r chi.Router) {
	r.Get("/profile", h.showProfile)
	r.Put("/profile", h.updateProfile)
	r.Post("/password", h.changePassword)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	From     string `json:"from,omitempty"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Actor         *authz.Actor `json:"actor,omitempty"`
	IssuedAt      *time.Time   `json:"issuedAt,omitempty"`
	CSRFToken     string       `json:"csrfToken,omitempty"`
}

type loginResponse struct {
	Actor      authz.Actor `json:"actor"`
	Token      string      `json:"token"`
	RedirectTo string      `json:"redirectTo"`
}

// showSession restores the persisted session for a client on startup. A
// missing or corrupt persisted record simply reports unauthenticated.
func (h *Handler) showSession(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	resp := sessionResponse{}
	if sess != nil {
		if token, err := h.csrfManager.EnsureToken(r.Context(), sess); err == nil {
			resp.CSRFToken = token
		}
		if actor := sess.Actor(); actor != nil {
			issued := sess.IssuedAt()
			resp.Authenticated = true
			resp.Actor = actor
			resp.IssuedAt = &issued
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginRequest
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if form.From == "" {
		form.From = r.URL.Query().Get("from")
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	actor, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		h.metrics.RecordLogin("failure")
		httpx.Problem(w, http.StatusUnauthorized, "Invalid Credentials", "Invalid email or password")
		return
	}
	h.metrics.RecordLogin("success")
	if actor.Misconfigured() {
		// Zero-visibility rather than fatal; operators need to know.
		h.logger.Warn("actor missing business assignment",
			slog.String("actor", actor.ID),
			slog.String("role", string(actor.Role)))
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	token := "mock-token-" + uuid.NewString()
	sess.SetActor(actor, token)
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back"})

	h.recordAudit(r.Context(), actor, "login")

	// Return the actor to the originally requested path when it is valid
	// for their role, otherwise land them on the role default.
	redirectTo := authz.DefaultLandingRoute(actor.Role)
	if form.From != "" && authz.IsAuthorized(actor.Role, form.From) {
		redirectTo = form.From
	}

	httpx.JSON(w, http.StatusOK, loginResponse{Actor: actor, Token: token, RedirectTo: redirectTo})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if actor := sess.Actor(); actor != nil {
			h.recordAudit(r.Context(), *actor, "logout")
		}
		sess.ClearActor()
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) showProfile(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"actor":       actor,
		"roleDisplay": actor.Role.DisplayName(),
	})
}

type profileRequest struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	var form profileRequest
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.UpdateProfile(r.Context(), actor.ID, form.FirstName, form.LastName)
	if err != nil {
		h.logger.Error("update profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// Keep the persisted session record in step with the directory.
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SetActor(updated, sess.Token())
	}
	httpx.JSON(w, http.StatusOK, updated)
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	var form passwordRequest
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.ChangePassword(r.Context(), actor.ID, form.CurrentPassword, form.NewPassword); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Credentials", "current password does not match")
			return
		}
		h.logger.Error("change password", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordAudit(ctx context.Context, actor authz.Actor, event string) {
	if h.audit == nil {
		return
	}
	payload := jobs.LoginAuditPayload{
		ActorID: actor.ID,
		Email:   actor.Email,
		Role:    string(actor.Role),
		Event:   event,
		At:      time.Now().UTC(),
	}
	if err := h.audit.EnqueueLoginAudit(ctx, payload); err != nil {
		h.logger.Warn("enqueue audit", slog.Any("error", err))
	}
}

// ShowSessionForTest exposes the session handler for tests.
func (h *Handler) ShowSessionForTest(w http.ResponseWriter, r *http.Request) {
	h.showSession(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// HandleLogoutForTest exposes the logout handler for tests.
func (h *Handler) HandleLogoutForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}
