package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/usecase"
	"hospital-directory/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetAllAuditLogs lists audit rows
// @Summary List audit logs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param action query string false "Action prefix, e.g. user.role."
// @Param external_id query string false "Affected account"
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.AuditLogFilterRequest{
		Action:     q.Get("action"),
		ExternalID: q.Get("external_id"),
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}

// GetRoleHistory lists role changes of one account
// @Summary Role history of an account
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "External account ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/role-history [get]
func (h *AuditLogHandler) GetRoleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.auditLogUsecase.GetRoleHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.InternalServerError(w, "Failed to get role history")
		return
	}

	response.Success(w, http.StatusOK, "Role history retrieved successfully", history)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}
