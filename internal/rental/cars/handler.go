package cars

import (
	"log/slog"
	"net/http"

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

type carForm struct {
	Make       string  `json:"make" validate:"required,max=64"`
	Model      string  `json:"model" validate:"required,max=64"`
	Year       int     `json:"year" validate:"required,min=1980,max=2100"`
	Plate      string  `json:"plate" validate:"required,max=16"`
	DailyRate  float64 `json:"daily_rate" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	BusinessID string  `json:"business_id" validate:"omitempty,max=64"`
}

type statusForm struct {
	Status string `json:"status" validate:"required,oneof=available rented maintenance"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	filters := rentalshared.FromQuery(r)
	records, pagination, err := h.service.List(r.Context(), actor, filters)
	if err != nil {
		h.logger.Error("list cars", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"cars":       records,
		"pagination": pagination,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, car)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form carForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	actor := shared.ActorFromContext(r.Context())
	created, err := h.service.Create(r.Context(), actor, carFromForm(form))
	if err != nil {
		h.logger.Error("create car", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var form carForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	actor := shared.ActorFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), carFromForm(form))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	var form statusForm
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

func carFromForm(form carForm) Car {
	car := Car{
		Make:      form.Make,
		Model:     form.Model,
		Year:      form.Year,
		Plate:     form.Plate,
		DailyRate: form.DailyRate,
		Status:    form.Status,
	}
	car.BusinessID = form.BusinessID
	return car
}
