package repository

import (
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and makes sure exactly one profile
	// exists for it, within a single transaction.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// UpdateWithProfile saves a user and its profile atomically
	UpdateWithProfile(user *models.User, profile *models.Profile) error

	// Delete removes a user together with its profile, meals and meal children
	Delete(id uint64) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// FindByUserID finds the profile owned by a user
	FindByUserID(userID uint64) (*models.Profile, error)

	// GetOrCreate returns the user's profile, creating an empty one if missing
	GetOrCreate(userID uint64) (*models.Profile, error)

	// Update updates a profile
	Update(profile *models.Profile) error

	// DeleteByUserID deletes the profile owned by a user
	DeleteByUserID(userID uint64) error
}

// MealRepository defines the interface for meal data access
type MealRepository interface {
	// Create creates a meal with its foods and annotations
	Create(meal *models.Meal) error

	// CreateWithDailyTotal creates a meal and returns the calorie total of
	// the owner's meals on the same date, in one transaction.
	CreateWithDailyTotal(meal *models.Meal) (int, error)

	// FindByIDForUser finds a meal by ID owned by the given user
	FindByIDForUser(id, userID uint64, preload ...string) (*models.Meal, error)

	// UpdateWithAnnotations saves the meal fields and overwrites the text of
	// every annotation row of the meal
	UpdateWithAnnotations(meal *models.Meal, annotation string) error

	// Delete deletes a meal owned by the user together with its children
	Delete(id, userID uint64) error

	// ListByDate lists the user's meals on a date
	ListByDate(userID uint64, date string) ([]models.Meal, error)

	// SumByDate returns the calorie total of the user's meals on a date
	SumByDate(userID uint64, date string) (int, error)

	// ListLatest lists the user's most recent meals
	ListLatest(userID uint64, limit int) ([]models.Meal, error)

	// List lists the user's meals newest first with pagination
	List(userID uint64, params utils.PaginationParams) ([]models.Meal, int64, error)

	// DailyTotals returns per-day calorie totals for dates in [from, to] that have meals
	DailyTotals(userID uint64, from, to string) ([]DailyTotal, error)
}

// DailyTotal is the calorie sum of one user's meals on one date
type DailyTotal struct {
	Date     string
	Calories int64
}
