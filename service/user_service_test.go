// service/user_service_test.go
package service

import (
	"database/sql"
	"errors"
	"go-furniture-api/model"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserService_ToggleAdmin(t *testing.T) {
	t.Run("promotes a regular user", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", id).Return(&model.User{ID: id, IsAdmin: false}, nil).Once()
		mockRepo.On("SetAdmin", id, true).Return(nil).Once()

		userService := NewUserService(mockRepo)
		err := userService.ToggleAdmin(id)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("demotes an admin", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", id).Return(&model.User{ID: id, IsAdmin: true}, nil).Once()
		mockRepo.On("SetAdmin", id, false).Return(nil).Once()

		userService := NewUserService(mockRepo)
		err := userService.ToggleAdmin(id)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", id).Return(nil, sql.ErrNoRows).Once()

		userService := NewUserService(mockRepo)
		err := userService.ToggleAdmin(id)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		mockRepo.AssertNotCalled(t, "SetAdmin")
	})

	t.Run("repository error", func(t *testing.T) {
		id := uuid.New()
		expectedError := errors.New("database error")
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", id).Return(&model.User{ID: id}, nil).Once()
		mockRepo.On("SetAdmin", id, true).Return(expectedError).Once()

		userService := NewUserService(mockRepo)
		err := userService.ToggleAdmin(id)

		assert.Equal(t, expectedError, err)
		mockRepo.AssertExpectations(t)
	})
}
