package handler

import (
	"encoding/json"
	"errors"
	"go-furniture-api/common"
	"go-furniture-api/logger"
	"go-furniture-api/model"
	"go-furniture-api/repository"
	"go-furniture-api/service"
	"net/http"
)

// UserHandler exposes the registration and session lifecycle endpoints.
type UserHandler struct {
	userRepo repository.IUserRepository
	auth     *service.AuthService
}

func NewUserHandler(userRepo repository.IUserRepository, auth *service.AuthService) *UserHandler {
	return &UserHandler{userRepo: userRepo, auth: auth}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// sessionResponse is the body returned by login and refresh: the access
// token travels in the body, the refresh token only in the cookie.
type sessionResponse struct {
	AccessToken string           `json:"access_token"`
	User        model.PublicUser `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "New user"
// @Success      201 {object} model.PublicUser
// @Failure      409 {object} common.AppError
// @Failure      422 {object} common.AppError
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	// Checked before the insert; the unique constraints remain the safety
	// net for concurrent registrations with the same username or email.
	if _, err := h.userRepo.GetUserByEmail(req.Email); err == nil {
		return common.NewAppError(http.StatusConflict, common.CodeConflict, "This email is already registered.", nil)
	}
	if _, err := h.userRepo.GetUserByUsername(req.Username); err == nil {
		return common.NewAppError(http.StatusConflict, common.CodeConflict, "This username already exists.", nil)
	}

	hashedPassword, err := h.auth.HashPassword(req.Password)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not hash password", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}

	if err := h.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return common.NewAppError(http.StatusConflict, common.CodeConflict,
				"A user with the same username or email already exists.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not create user", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("New user registered")
	writeJSON(w, http.StatusCreated, user.Public())
	return nil
}

// Login godoc
// @Summary      Authenticate and open a session
// @Description  Returns an access token in the body and sets the refresh token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Credentials"
// @Success      200 {object} handler.sessionResponse
// @Failure      401 {object} common.AppError
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	user, pair, appErr := h.auth.Login(req.Email, req.Password)
	if appErr != nil {
		return appErr
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")

	setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, sessionResponse{AccessToken: pair.AccessToken, User: user.Public()})
	return nil
}

// Refresh godoc
// @Summary      Rotate the session tokens
// @Description  Consumes the refresh cookie, revokes its jti and issues a new pair.
// @Tags         auth
// @Produce      json
// @Success      200 {object} handler.sessionResponse
// @Failure      401 {object} common.AppError
// @Router       /api/v1/auth/refresh [post]
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, pair, appErr := h.auth.Refresh(refreshTokenFromRequest(r))
	if appErr != nil {
		return appErr
	}

	setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, sessionResponse{AccessToken: pair.AccessToken, User: user.Public()})
	return nil
}

// Logout godoc
// @Summary      Close the session
// @Description  Revokes the presented refresh token and clears its cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {object} common.AppError
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	if appErr := h.auth.Logout(refreshTokenFromRequest(r)); appErr != nil {
		return appErr
	}

	clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully."})
	return nil
}
