package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken         = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidAge            = errors.New("age must be 0 or greater")
	ErrUserNotFound          = errors.New("user not found")
	ErrFailedToHashPassword  = errors.New("failed to hash password")
	ErrFailedToCreateUser    = errors.New("failed to create user")
	ErrFailedToCreateProfile = errors.New("failed to create profile")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Age             int
	Gender          models.Gender
}

// Signup creates a new user along with its profile.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if input.Age < 0 {
		return nil, ErrInvalidAge
	}

	verr := &ValidationError{}
	if username == "" {
		verr.Add("username", "username is required")
	} else if len(username) > constants.MaxUsernameLength {
		verr.Add("username", fmt.Sprintf("username must be at most %d characters", constants.MaxUsernameLength))
	}
	if strings.TrimSpace(input.Email) == "" {
		verr.Add("email", "email is required")
	}
	if !input.Gender.Valid() {
		verr.Add("gender", "gender must be M or F")
	}
	if input.Password != input.PasswordConfirm {
		verr.Add("password2", ErrPasswordMismatch.Error())
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if err := s.ensureUsernameAvailable(username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashedPassword),
	}
	profile := &models.Profile{
		Age:    input.Age,
		Gender: input.Gender,
	}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			// lost a race against a concurrent signup for the same name
			if _, findErr := s.userRepo.FindByUsername(username); findErr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToCreateProfile
		default:
			return nil, fmt.Errorf("failed to complete signup: %w", err)
		}
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ChangePasswordInput holds the fields of the password change form.
type ChangePasswordInput struct {
	OldPassword  string
	NewPassword1 string
	NewPassword2 string
}

// ChangePassword verifies the current password and stores the new one.
// The returned user carries the new hash so the caller can rebind its session.
func (s *AuthService) ChangePassword(userID uint64, input ChangePasswordInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return nil, NewValidationError("old_password", "your old password was entered incorrectly")
	}
	if input.NewPassword1 != input.NewPassword2 {
		return nil, NewValidationError("new_password2", ErrPasswordMismatch.Error())
	}
	if len(input.NewPassword1) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return nil, persistenceError("update password", err)
	}

	return user, nil
}

func (s *AuthService) ensureUsernameAvailable(username string) error {
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}
