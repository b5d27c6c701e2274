package handler

import (
	"encoding/json"
	"net/http"

	"sportsclub/internal/bookings/service"
	"sportsclub/pkg/contracts"
	apperrors "sportsclub/pkg/errors"
	httputil "sportsclub/pkg/http"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	admin   contracts.Guard
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, admin contracts.Guard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		admin:   admin,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	confirmation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, confirmation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Plan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	plan, err := h.service.Plan(r.Context(), service.PlanRequest{
		SportID:   query.Get("sport_id"),
		Date:      query.Get("date"),
		StartTime: query.Get("start"),
		EndTime:   query.Get("end"),
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Plan", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, plan); err != nil {
		h.log.Error("failed to write success response", "handler", "Plan", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) DaySheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DaySheet", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	sheet, err := h.service.DaySheet(r.Context(), r.URL.Query().Get("date"), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DaySheet", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sheet); err != nil {
		h.log.Error("failed to write success response", "handler", "DaySheet", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !httputil.IsConfirmed(r) {
		if writeErr := httputil.WriteError(w, apperrors.ConfirmationRequired("Deleting a booking")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/planner", h.Plan)

	router.GET("/api/v1/admin/bookings", h.admin(h.DaySheet))
	router.GET("/api/v1/admin/bookings/id/:id", h.admin(h.GetByID))
	router.DELETE("/api/v1/admin/bookings/id/:id", h.admin(h.Delete))
}
