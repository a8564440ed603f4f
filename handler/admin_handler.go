package handler

import (
	"database/sql"
	"errors"
	"go-furniture-api/common"
	"go-furniture-api/logger"
	"go-furniture-api/service"
	"net/http"

	"github.com/google/uuid"
)

// AdminHandler exposes user administration endpoints. All of them sit
// behind the access gate plus the admin gate.
type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

func parseUserID(r *http.Request) (uuid.UUID, *common.AppError) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, common.NewAppError(http.StatusBadRequest, common.CodeBadRequest, "Invalid user id", nil)
	}
	return id, nil
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200 {array} model.User
// @Failure      403 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.users.ListUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not list users", err)
	}

	writeJSON(w, http.StatusOK, users)
	return nil
}

// ToggleUserRole godoc
// @Summary      Toggle a user's admin flag
// @Tags         admin
// @Produce      json
// @Param        id path string true "User id"
// @Success      200 {object} map[string]string
// @Failure      403 {object} common.AppError
// @Failure      404 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/admin/users/{id}/role [patch]
func (h *AdminHandler) ToggleUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := parseUserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.users.ToggleAdmin(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, common.CodeNotFound, "User with the specified ID was not found.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not update user role", err)
	}

	logger.Log.WithField("user_id", id).Info("Admin flag toggled")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated."})
	return nil
}

// DeleteUser godoc
// @Summary      Delete a user account
// @Tags         admin
// @Param        id path string true "User id"
// @Success      204 "No Content"
// @Failure      403 {object} common.AppError
// @Failure      404 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := parseUserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.users.DeleteUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, common.CodeNotFound, "User with the specified ID was not found.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not delete user", err)
	}

	logger.Log.WithField("user_id", id).Info("User deleted by admin")
	w.WriteHeader(http.StatusNoContent)
	return nil
}
