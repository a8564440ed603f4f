package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-furniture-api/common"
	"go-furniture-api/config"
	"go-furniture-api/logger"
	"go-furniture-api/model"
	"go-furniture-api/repository"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns token issuance, token validation and the session
// lifecycle (login, refresh rotation, logout, password change).
type AuthService struct {
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
}

func NewAuthService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *AuthService {
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// TokenPair bundles the two credentials minted for a session. The access
// token goes into the response body, the refresh token into the cookie.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

// AccessTokenTTL returns the configured access token lifetime.
func AccessTokenTTL() time.Duration {
	return time.Duration(config.AppConfig.JWT.AccessTokenMinutes) * time.Minute
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func RefreshTokenTTL() time.Duration {
	return time.Duration(config.AppConfig.JWT.RefreshTokenHours) * time.Hour
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) signToken(userID uuid.UUID, kind string, ttl time.Duration, now time.Time) (string, error) {
	claims := &model.AppClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// IssueTokenPair mints a fresh access+refresh pair for the user. Each token
// carries its own jti. No side effects: the ledger and the user record are
// untouched.
func (s *AuthService) IssueTokenPair(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessToken, err := s.signToken(user.ID, model.TokenKindAccess, AccessTokenTTL(), now)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signToken(user.ID, model.TokenKindRefresh, RefreshTokenTTL(), now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Authenticate is the request gate. Given a raw credential and the token
// kind the endpoint requires, it either resolves a live user or reports one
// specific failure, checked in this order: missing credential, bad
// signature/structure, expiry, ledger revocation, unresolved subject,
// watermark. The returned claims expose the jti for refresh rotation.
func (s *AuthService) Authenticate(rawToken, requiredKind string) (*model.User, *model.AppClaims, *common.AppError) {
	if rawToken == "" {
		return nil, nil, common.NewAuthError(common.CodeAuthorizationMissing,
			"Authorization credential is missing or malformed. Please provide a valid JWT.")
	}

	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return getJwtKey(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, common.NewAuthError(common.CodeTokenExpired,
				"The provided token has expired. Please log in again.")
		}
		return nil, nil, common.NewAuthError(common.CodeInvalidToken,
			"The provided token is invalid or its signature could not be verified.")
	}

	// A refresh token presented where an access token is required (or the
	// other way round) is treated as invalid, not as a distinct failure.
	if !token.Valid || claims.Kind != requiredKind || claims.ID == "" {
		return nil, nil, common.NewAuthError(common.CodeInvalidToken,
			"The provided token is invalid or its signature could not be verified.")
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, common.NewAuthError(common.CodeInvalidToken,
			"The provided token is invalid or its signature could not be verified.")
	}

	blocked, err := s.tokenRepo.IsBlocked(claims.ID)
	if err != nil {
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not verify token status", err)
	}
	if blocked {
		return nil, nil, common.NewAuthError(common.CodeTokenRevoked,
			"This token has been revoked. Please obtain a new one.")
	}

	user, err := s.userRepo.GetUserByID(subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.NewAuthError(common.CodeUserNotFound,
				"User associated with this token was not found.")
		}
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not resolve token subject", err)
	}

	// Tokens issued before the user's watermark are bulk-invalidated, for
	// example by a password change, without individual ledger entries.
	if user.TokenValidAfter != nil && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(*user.TokenValidAfter) {
		return nil, nil, common.NewAuthError(common.CodeTokenRevoked,
			"This token has been revoked. Please obtain a new one.")
	}

	return user, claims, nil
}

// Login verifies the credentials and opens a new session. Unknown email and
// wrong password produce the identical response so callers cannot probe
// which addresses are registered.
func (s *AuthService) Login(email, password string) (*model.User, *TokenPair, *common.AppError) {
	uniformFailure := common.NewAuthError(common.CodeUnauthorized, "Invalid email or password.")

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, uniformFailure
		}
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not look up user", err)
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, nil, uniformFailure
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not issue tokens", err)
	}

	s.touchLastLogin(user)
	return user, pair, nil
}

// Refresh consumes a refresh token and rotates the session: the presented
// jti goes into the ledger before a new pair is issued, so every refresh
// token is single-use and replay is detected as TOKEN_REVOKED.
func (s *AuthService) Refresh(rawRefreshToken string) (*model.User, *TokenPair, *common.AppError) {
	user, claims, appErr := s.Authenticate(rawRefreshToken, model.TokenKindRefresh)
	if appErr != nil {
		return nil, nil, appErr
	}

	if err := s.tokenRepo.BlockToken(claims.ID); err != nil {
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not revoke refresh token", err)
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not issue tokens", err)
	}

	s.touchLastLogin(user)
	return user, pair, nil
}

// Logout consumes the refresh token without issuing a replacement.
func (s *AuthService) Logout(rawRefreshToken string) *common.AppError {
	_, claims, appErr := s.Authenticate(rawRefreshToken, model.TokenKindRefresh)
	if appErr != nil {
		return appErr
	}

	if err := s.tokenRepo.BlockToken(claims.ID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not revoke refresh token", err)
	}
	return nil
}

// ChangePassword re-verifies the old password, stores the new hash and
// moves the watermark to now, invalidating every previously issued token.
func (s *AuthService) ChangePassword(user *model.User, oldPassword, newPassword string) *common.AppError {
	if !s.CheckPasswordHash(oldPassword, user.Password) {
		return common.NewAuthError(common.CodeUnauthorized, "Old password is not correct.")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not hash password", err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash, time.Now()); err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError,
			"Could not update password", err)
	}
	return nil
}

// touchLastLogin records the session activity timestamp. A failure here is
// logged but does not abort the login or refresh that triggered it.
func (s *AuthService) touchLastLogin(user *model.User) {
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Log.WithField("user_id", user.ID).WithError(err).Warn("Failed to update last login timestamp")
		return
	}
	user.LastLoginAt = &now
}
