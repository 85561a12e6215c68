package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// AccountService handles profile maintenance and account removal.
type AccountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile returns the user's profile, provisioning an empty one for
// accounts created before profiles existed.
func (s *AccountService) GetProfile(userID uint64) (*models.Profile, error) {
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, persistenceError("load profile", err)
	}
	return profile, nil
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Age    int
	Gender models.Gender
}

func (in ProfileInput) validate() error {
	if in.Age < 0 {
		return ErrInvalidAge
	}
	if !in.Gender.Valid() {
		return NewValidationError("gender", "gender must be M or F")
	}
	return nil
}

// UpdateProfile overwrites age and gender of the user's profile.
func (s *AccountService) UpdateProfile(userID uint64, input ProfileInput) (*models.Profile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.Age = input.Age
	profile.Gender = input.Gender
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, persistenceError("update profile", err)
	}
	return profile, nil
}

// AccountInput holds the fields of the combined user and profile form.
type AccountInput struct {
	Username string
	Email    string
	ProfileInput
}

// UpdateAccount saves username, email, age and gender together.
func (s *AccountService) UpdateAccount(userID uint64, input AccountInput) (*models.User, error) {
	if err := input.ProfileInput.validate(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	verr := &ValidationError{}
	if username == "" {
		verr.Add("username", "username is required")
	} else if len(username) > constants.MaxUsernameLength {
		verr.Add("username", fmt.Sprintf("username must be at most %d characters", constants.MaxUsernameLength))
	}
	if strings.TrimSpace(input.Email) == "" {
		verr.Add("email", "email is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		existing, err := s.userRepo.FindByUsername(username)
		if err == nil && existing.ID != user.ID {
			return nil, ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	user.Username = username
	user.Email = strings.TrimSpace(input.Email)
	profile := &models.Profile{Age: input.Age, Gender: input.Gender}

	if err := s.userRepo.UpdateWithProfile(user, profile); err != nil {
		return nil, persistenceError("update account", err)
	}
	user.Profile = profile
	return user, nil
}

// DeleteAccount removes the profile, then the user with all meals. A failing
// profile delete is logged and does not stop the user delete.
func (s *AccountService) DeleteAccount(userID uint64) error {
	if err := s.profileRepo.DeleteByUserID(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to delete profile, continuing with account deletion")
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return persistenceError("delete account", err)
	}
	return nil
}

func (s *AccountService) getUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
