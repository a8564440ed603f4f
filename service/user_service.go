package service

import (
	"go-furniture-api/model"
	"go-furniture-api/repository"

	"github.com/google/uuid"
)

// UserService handles user administration business logic.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every registered user, most recently active first.
func (s *UserService) ListUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}

// ToggleAdmin flips the admin flag on the given user.
func (s *UserService) ToggleAdmin(userID uuid.UUID) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	return s.userRepo.SetAdmin(userID, !user.IsAdmin)
}

// DeleteUser removes a user account. Outstanding tokens for the subject
// fail at lookup from then on, so no ledger entries are needed.
func (s *UserService) DeleteUser(userID uuid.UUID) error {
	return s.userRepo.DeleteUser(userID)
}
