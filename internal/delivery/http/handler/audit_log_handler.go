package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// ListAuditLogs handles GET /api/admin/audit-logs?action=&actor=&limit=
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.AuditLogFilter{Action: query.Get("action")}

	if raw := query.Get("actor"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid actor ID")
			return
		}
		filter.ActorID = &actorID
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, "Limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	logs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}
	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	entry, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	switch {
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, "Audit log not found")
	case err != nil:
		response.InternalServerError(w, "Failed to get audit log")
	default:
		response.Success(w, http.StatusOK, "Audit log retrieved successfully", entry)
	}
}
