package bookings

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fleetdesk/fleetdesk/internal/platform/httpx"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Post("/{id}/status", h.changeStatus)
	r.Delete("/{id}", h.delete)
}

type bookingForm struct {
	CarID      string  `json:"car_id" validate:"required"`
	ClientID   string  `json:"client_id" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
	Notes      string  `json:"notes" validate:"max=512"`
	BusinessID string  `json:"business_id" validate:"omitempty,max=64"`
}

type bookingStatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed active completed cancelled"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	filters := rentalshared.FromQuery(r)
	records, pagination, err := h.service.List(r.Context(), actor, filters)
	if err != nil {
		h.logger.Error("list bookings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"bookings":   records,
		"pagination": pagination,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.decodeBooking(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	created, err := h.service.Create(r.Context(), actor, booking)
	if err != nil {
		h.logger.Error("create booking", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.decodeBooking(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), booking)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	var form bookingStatusForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	actor := shared.ActorFromContext(r.Context())
	updated, err := h.service.ChangeStatus(r.Context(), actor, chi.URLParam(r, "id"), form.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeBooking(w http.ResponseWriter, r *http.Request) (Booking, bool) {
	var form bookingForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return Booking{}, false
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Booking{}, false
	}
	start, err := time.Parse("2006-01-02", form.StartDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "start_date must be YYYY-MM-DD")
		return Booking{}, false
	}
	end, err := time.Parse("2006-01-02", form.EndDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "end_date must be YYYY-MM-DD")
		return Booking{}, false
	}
	booking := Booking{
		CarID:      form.CarID,
		ClientID:   form.ClientID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: form.TotalPrice,
		Notes:      form.Notes,
	}
	booking.BusinessID = form.BusinessID
	return booking, true
}
