package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"netmibd/internal/auth"
	"netmibd/internal/middleware"
	"netmibd/internal/models"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type AuditHandler struct {
	userService *auth.UserService
	log         *slog.Logger
}

func NewAuditHandler(userService *auth.UserService, log *slog.Logger) *AuditHandler {
	return &AuditHandler{userService: userService, log: log}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.WriteError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	logs, err := h.userService.AuditLogs(r.Context(), limit)
	if err != nil {
		h.log.Error("failed to list audit logs", "error", err)
		middleware.WriteError(w, r, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	render.JSON(w, r, logs)
}
