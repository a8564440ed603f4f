// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"errors"
	"go-furniture-api/common"
	"go-furniture-api/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockUserRepo is a mock implementation of repository.IUserRepository.
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByID(id uuid.UUID) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetAllUsers() ([]*model.User, error) {
	args := m.Called()
	return args.Get(0).([]*model.User), args.Error(1)
}
func (m *mockUserRepo) UpdateUsername(id uuid.UUID, username string) error {
	args := m.Called(id, username)
	return args.Error(0)
}
func (m *mockUserRepo) UpdatePassword(id uuid.UUID, passwordHash string, validAfter time.Time) error {
	args := m.Called(id, passwordHash, validAfter)
	return args.Error(0)
}
func (m *mockUserRepo) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}
func (m *mockUserRepo) SetAdmin(id uuid.UUID, isAdmin bool) error {
	args := m.Called(id, isAdmin)
	return args.Error(0)
}
func (m *mockUserRepo) DeleteUser(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

// mockTokenRepo is a mock implementation of repository.ITokenRepository.
type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) BlockToken(jti string) error {
	args := m.Called(jti)
	return args.Error(0)
}
func (m *mockTokenRepo) IsBlocked(jti string) (bool, error) {
	args := m.Called(jti)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokenRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func assertAuthFailure(t *testing.T, appErr *common.AppError, errorCode string) {
	t.Helper()
	assert.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, errorCode, appErr.ErrorCode)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// HashPassword and CheckPasswordHash don't touch any repository, so nil
	// dependencies are fine for this test.
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_IssueTokenPair(t *testing.T) {
	authService := NewAuthService(nil, nil)
	user := &model.User{ID: uuid.New()}

	pair, err := authService.IssueTokenPair(user)

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestAuthService_Authenticate(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@x.com"}

	t.Run("missing credential", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo), new(mockTokenRepo))

		resolved, _, appErr := authService.Authenticate("", model.TokenKindAccess)

		assert.Nil(t, resolved)
		assertAuthFailure(t, appErr, common.CodeAuthorizationMissing)
	})

	t.Run("structurally corrupt token", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo), new(mockTokenRepo))

		_, _, appErr := authService.Authenticate("not.a.jwt", model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo), new(mockTokenRepo))
		raw, err := authService.signToken(user.ID, model.TokenKindAccess, -time.Minute, time.Now().Add(-time.Hour))
		assert.NoError(t, err)

		_, _, appErr := authService.Authenticate(raw, model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeTokenExpired)
	})

	t.Run("kind mismatch is invalid", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo), new(mockTokenRepo))
		pair, err := authService.IssueTokenPair(user)
		assert.NoError(t, err)

		// A refresh token presented where an access token is required.
		_, _, appErr := authService.Authenticate(pair.RefreshToken, model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeInvalidToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(true, nil).Once()
		authService := NewAuthService(new(mockUserRepo), mockTokens)
		pair, err := authService.IssueTokenPair(user)
		assert.NoError(t, err)

		_, _, appErr := authService.Authenticate(pair.AccessToken, model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeTokenRevoked)
		mockTokens.AssertExpectations(t)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByID", user.ID).Return(nil, sql.ErrNoRows).Once()
		mockTokens := new(mockTokenRepo)
		mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()
		authService := NewAuthService(mockUsers, mockTokens)
		pair, err := authService.IssueTokenPair(user)
		assert.NoError(t, err)

		_, _, appErr := authService.Authenticate(pair.AccessToken, model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeUserNotFound)
		mockUsers.AssertExpectations(t)
	})

	t.Run("token issued before watermark", func(t *testing.T) {
		watermark := time.Now()
		staleUser := &model.User{ID: user.ID, TokenValidAfter: &watermark}

		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByID", user.ID).Return(staleUser, nil).Once()
		mockTokens := new(mockTokenRepo)
		mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()
		authService := NewAuthService(mockUsers, mockTokens)

		// Issued an hour before the watermark, expiry still in the future.
		raw, err := authService.signToken(user.ID, model.TokenKindAccess, 2*time.Hour, time.Now().Add(-time.Hour))
		assert.NoError(t, err)

		_, _, appErr := authService.Authenticate(raw, model.TokenKindAccess)

		assertAuthFailure(t, appErr, common.CodeTokenRevoked)
	})

	t.Run("success resolves the user", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByID", user.ID).Return(user, nil).Once()
		mockTokens := new(mockTokenRepo)
		mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()
		authService := NewAuthService(mockUsers, mockTokens)
		pair, err := authService.IssueTokenPair(user)
		assert.NoError(t, err)

		resolved, claims, appErr := authService.Authenticate(pair.AccessToken, model.TokenKindAccess)

		assert.Nil(t, appErr)
		assert.Equal(t, user, resolved)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("ledger outage is an internal error, not an auth failure", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, errors.New("connection refused")).Once()
		authService := NewAuthService(new(mockUserRepo), mockTokens)
		pair, err := authService.IssueTokenPair(user)
		assert.NoError(t, err)

		_, _, appErr := authService.Authenticate(pair.AccessToken, model.TokenKindAccess)

		assert.NotNil(t, appErr)
		assert.Equal(t, 500, appErr.Code)
		assert.Equal(t, common.CodeInternalError, appErr.ErrorCode)
	})
}

func TestAuthService_Login(t *testing.T) {
	password := "Secret1!"
	hashService := NewAuthService(nil, nil)
	hash, err := hashService.HashPassword(password)
	assert.NoError(t, err)

	user := &model.User{ID: uuid.New(), Email: "alice@x.com", Password: hash}

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()
		mockUsers.On("GetUserByEmail", user.Email).Return(user, nil).Once()
		authService := NewAuthService(mockUsers, new(mockTokenRepo))

		_, _, unknownErr := authService.Login("ghost@x.com", password)
		_, _, wrongPwErr := authService.Login(user.Email, "wrong-password")

		assertAuthFailure(t, unknownErr, common.CodeUnauthorized)
		assertAuthFailure(t, wrongPwErr, common.CodeUnauthorized)
		assert.Equal(t, unknownErr.Message, wrongPwErr.Message)
	})

	t.Run("success issues a pair and touches last login", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByEmail", user.Email).Return(user, nil).Once()
		mockUsers.On("UpdateLastLogin", user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
		authService := NewAuthService(mockUsers, new(mockTokenRepo))

		resolved, pair, appErr := authService.Login(user.Email, password)

		assert.Nil(t, appErr)
		assert.Equal(t, user, resolved)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		mockUsers.AssertExpectations(t)
	})
}

func TestAuthService_Refresh_SingleUse(t *testing.T) {
	user := &model.User{ID: uuid.New()}

	mockUsers := new(mockUserRepo)
	mockUsers.On("GetUserByID", user.ID).Return(user, nil)
	mockUsers.On("UpdateLastLogin", user.ID, mock.AnythingOfType("time.Time")).Return(nil)

	// The ledger sees three lookups: the first use of the original token
	// (not yet blocked), the replay of the same token (now blocked), and
	// the first use of the rotated token.
	mockTokens := new(mockTokenRepo)
	mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()
	mockTokens.On("BlockToken", mock.AnythingOfType("string")).Return(nil).Twice()
	mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(true, nil).Once()
	mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()

	authService := NewAuthService(mockUsers, mockTokens)
	pair, err := authService.IssueTokenPair(user)
	assert.NoError(t, err)

	// First use succeeds and yields a different refresh token.
	_, newPair, appErr := authService.Refresh(pair.RefreshToken)
	assert.Nil(t, appErr)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// Replaying the consumed token must fail even though it has not expired.
	_, _, replayErr := authService.Refresh(pair.RefreshToken)
	assertAuthFailure(t, replayErr, common.CodeTokenRevoked)

	// The rotated token is still live.
	_, _, rotatedErr := authService.Refresh(newPair.RefreshToken)
	assert.Nil(t, rotatedErr)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	user := &model.User{ID: uuid.New()}

	mockUsers := new(mockUserRepo)
	mockUsers.On("GetUserByID", user.ID).Return(user, nil).Once()
	mockTokens := new(mockTokenRepo)
	mockTokens.On("IsBlocked", mock.AnythingOfType("string")).Return(false, nil).Once()
	mockTokens.On("BlockToken", mock.AnythingOfType("string")).Return(nil).Once()

	authService := NewAuthService(mockUsers, mockTokens)
	pair, err := authService.IssueTokenPair(user)
	assert.NoError(t, err)

	appErr := authService.Logout(pair.RefreshToken)

	assert.Nil(t, appErr)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	oldPassword := "OldSecret1!"
	hashService := NewAuthService(nil, nil)
	hash, err := hashService.HashPassword(oldPassword)
	assert.NoError(t, err)

	user := &model.User{ID: uuid.New(), Password: hash}

	t.Run("wrong old password", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		authService := NewAuthService(mockUsers, new(mockTokenRepo))

		appErr := authService.ChangePassword(user, "not-the-old-password", "NewSecret1!")

		assertAuthFailure(t, appErr, common.CodeUnauthorized)
		mockUsers.AssertNotCalled(t, "UpdatePassword")
	})

	t.Run("success moves the watermark to now", func(t *testing.T) {
		before := time.Now()
		mockUsers := new(mockUserRepo)
		mockUsers.On("UpdatePassword", user.ID, mock.AnythingOfType("string"),
			mock.MatchedBy(func(at time.Time) bool { return !at.Before(before) })).Return(nil).Once()
		authService := NewAuthService(mockUsers, new(mockTokenRepo))

		appErr := authService.ChangePassword(user, oldPassword, "NewSecret1!")

		assert.Nil(t, appErr)
		mockUsers.AssertExpectations(t)
	})
}
