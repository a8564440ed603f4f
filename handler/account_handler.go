package handler

import (
	"errors"
	"go-furniture-api/common"
	"go-furniture-api/logger"
	"go-furniture-api/model"
	"go-furniture-api/repository"
	"go-furniture-api/service"
	"net/http"
)

// AccountHandler exposes the endpoints a user calls on their own account.
// All of them sit behind the access-token gate.
type AccountHandler struct {
	userRepo repository.IUserRepository
	auth     *service.AuthService
}

func NewAccountHandler(userRepo repository.IUserRepository, auth *service.AuthService) *AccountHandler {
	return &AccountHandler{userRepo: userRepo, auth: auth}
}

// GetAccount godoc
// @Summary      Get the current user's profile
// @Tags         account
// @Produce      json
// @Success      200 {object} model.User
// @Failure      401 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/account [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := CurrentUser(r)
	if !ok {
		return common.NewAuthError(common.CodeUnauthorized, "No authenticated user in request")
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// DeleteAccount godoc
// @Summary      Delete the current user's account
// @Description  All outstanding tokens for the account become unusable: their subject no longer resolves.
// @Tags         account
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/account [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := CurrentUser(r)
	if !ok {
		return common.NewAuthError(common.CodeUnauthorized, "No authenticated user in request")
	}

	if err := h.userRepo.DeleteUser(user.ID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not delete account", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Account deleted")

	clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully."})
	return nil
}

// ChangeUsername godoc
// @Summary      Change the current user's username
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body model.ChangeUsernameRequest true "New username"
// @Success      200 {object} map[string]string
// @Failure      409 {object} common.AppError
// @Failure      422 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/account/username [patch]
func (h *AccountHandler) ChangeUsername(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := CurrentUser(r)
	if !ok {
		return common.NewAuthError(common.CodeUnauthorized, "No authenticated user in request")
	}

	var req model.ChangeUsernameRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.userRepo.UpdateUsername(user.ID, req.Username); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return common.NewAppError(http.StatusConflict, common.CodeConflict, "This username already exists.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not update username", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Username updated."})
	return nil
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Description  Verifies the old password, stores the new hash and invalidates every token issued before this instant.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body model.ChangePasswordRequest true "Old and new password"
// @Success      200 {object} map[string]string
// @Failure      401 {object} common.AppError
// @Failure      422 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/account/password [patch]
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := CurrentUser(r)
	if !ok {
		return common.NewAuthError(common.CodeUnauthorized, "No authenticated user in request")
	}

	var req model.ChangePasswordRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if appErr := h.auth.ChangePassword(user, req.OldPassword, req.NewPassword); appErr != nil {
		return appErr
	}

	logger.Log.WithField("user_id", user.ID).Info("Password changed, previous tokens invalidated")

	// The caller's current tokens are now behind the watermark too; the
	// client is expected to log in again.
	clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated. Please log in again."})
	return nil
}
