package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"sportsclub/internal/auth/service"
	apperrors "sportsclub/pkg/errors"
	httputil "sportsclub/pkg/http"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type sessionKey struct{}

// SessionFromContext returns the admin session RequireAdmin attached.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*model.Session)
	return s, ok
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

type SessionHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewSessionHandler(service service.AuthService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

// RequireAdmin is a contracts.Guard: the wrapped handle runs only for a
// request carrying a live admin session.
func (h *SessionHandler) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		session, err := h.service.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			h.writeError(w, "RequireAdmin", err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)), ps)
	}
}

func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "SignIn", apperrors.InvalidInput("Invalid request body"))
		return
	}

	token, err := h.service.SignIn(r.Context(), &creds)
	if err != nil {
		h.writeError(w, "SignIn", err)
		return
	}

	if err := httputil.WriteCreated(w, token); err != nil {
		h.log.Error("failed to write created response", "handler", "SignIn", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "Current", apperrors.Unauthorized("missing session"))
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "Current", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, "SignOut", apperrors.Unauthorized("missing session"))
		return
	}

	if err := h.service.SignOut(r.Context(), session.ID); err != nil {
		h.writeError(w, "SignOut", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/admin/session", h.SignIn)
	router.GET("/api/v1/admin/session", h.RequireAdmin(h.Current))
	router.DELETE("/api/v1/admin/session", h.RequireAdmin(h.SignOut))
}
