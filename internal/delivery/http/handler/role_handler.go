package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/delivery/http/middleware"
	"hospital-directory/internal/usecase"
	"hospital-directory/pkg/response"
	"hospital-directory/pkg/validator"

	"github.com/gorilla/mux"
)

type RoleHandler struct {
	roleUsecase usecase.RoleUsecase
	validator   *validator.CustomValidator
}

func NewRoleHandler(roleUsecase usecase.RoleUsecase, validator *validator.CustomValidator) *RoleHandler {
	return &RoleHandler{
		roleUsecase: roleUsecase,
		validator:   validator,
	}
}

func callerFromRequest(r *http.Request) (usecase.Caller, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Caller{}, false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	return usecase.Caller{UserID: userID, Role: role}, true
}

// SetRole handles assigning a role claim
// @Summary Set a user's role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "External account ID"
// @Param request body dto.SetRoleRequest true "Set Role Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/role [put]
func (h *RoleHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.roleUsecase.SetRole(r.Context(), caller, mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeError(w, err, "Failed to set role")
		return
	}

	response.Success(w, http.StatusOK, "Role updated successfully", result)
}

// RemoveRole handles removing a role claim
// @Summary Remove a user's role
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "External account ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/role [delete]
func (h *RoleHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.roleUsecase.RemoveRole(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to remove role")
		return
	}

	response.Success(w, http.StatusOK, "Role removed successfully", result)
}

// ListUsers handles listing accounts for role management
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name or email substring"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *RoleHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	users, err := h.roleUsecase.ListUsers(r.Context(), caller, r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, err, "Failed to list users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *RoleHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrNotAuthorized):
		response.Forbidden(w, "Not authorized")
	case errors.Is(err, usecase.ErrInvalidRole):
		response.BadRequest(w, "Invalid role")
	case errors.Is(err, usecase.ErrAccountNotFound):
		response.NotFound(w, "Account not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
