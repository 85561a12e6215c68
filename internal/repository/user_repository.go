package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when provisioning the profile fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
	// ErrDeleteUser is returned when removing a user or its data fails.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates a user and provisions its profile atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile", "Meals").Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		profile.UserID = user.ID
		if err := ensureProfile(tx, profile); err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}

		user.Profile = profile
		return nil
	})
}

// ensureProfile is the get-or-create step for a user's profile. Running it
// twice for the same user leaves a single row carrying the given values.
func ensureProfile(tx *gorm.DB, profile *models.Profile) error {
	return tx.
		Where(models.Profile{UserID: profile.UserID}).
		Assign(map[string]interface{}{"age": profile.Age, "gender": profile.Gender}).
		FirstOrCreate(profile).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit("Profile", "Meals").Save(user).Error
}

// UpdateWithProfile saves a user and its profile in a transaction
func (r *GormUserRepository) UpdateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile", "Meals").Save(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return ensureProfile(tx, profile)
	})
}

// Delete deletes a user and everything the user owns in a transaction
func (r *GormUserRepository) Delete(id uint64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		mealIDs := tx.Model(&models.Meal{}).Select("id").Where("user_id = ?", id)

		// Delete meal children first
		if err := tx.Where("meal_id IN (?)", mealIDs).Delete(&models.Food{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id IN (?)", mealIDs).Delete(&models.RelatedData{}).Error; err != nil {
			return err
		}

		// Delete meals and profile
		if err := tx.Where("user_id = ?", id).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrDeleteUser, err)
	}
	return err
}
