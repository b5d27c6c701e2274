package handler

import (
	"encoding/json"
	"net/http"

	"sportsclub/internal/sports/service"
	"sportsclub/pkg/contracts"
	apperrors "sportsclub/pkg/errors"
	httputil "sportsclub/pkg/http"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SportHandler struct {
	service service.SportService
	admin   contracts.Guard
	log     *logger.Logger
}

func NewSportHandler(service service.SportService, admin contracts.Guard, log *logger.Logger) *SportHandler {
	return &SportHandler{
		service: service,
		admin:   admin,
		log:     log,
	}
}

func (h *SportHandler) ListActive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sports, err := h.service.ListActive(r.Context())
	if err != nil {
		h.writeError(w, "ListActive", err)
		return
	}

	if err := httputil.WriteSuccess(w, sports); err != nil {
		h.log.Error("failed to write success response", "handler", "ListActive", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SportHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sports, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, sports); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SportHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SportCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	sport, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, sport); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SportHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.SportUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	sport, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, sport); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SportHandler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sport, err := h.service.Toggle(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Toggle", err)
		return
	}

	if err := httputil.WriteSuccess(w, sport); err != nil {
		h.log.Error("failed to write success response", "handler", "Toggle", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SportHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !httputil.IsConfirmed(r) {
		h.writeError(w, "Delete", apperrors.ConfirmationRequired("Deleting a sport"))
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SportHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/sports", h.ListActive)

	router.GET("/api/v1/admin/sports", h.admin(h.ListAll))
	router.POST("/api/v1/admin/sports", h.admin(h.Create))
	router.PATCH("/api/v1/admin/sports/id/:id", h.admin(h.Update))
	router.POST("/api/v1/admin/sports/id/:id/toggle", h.admin(h.Toggle))
	router.DELETE("/api/v1/admin/sports/id/:id", h.admin(h.Delete))
}
