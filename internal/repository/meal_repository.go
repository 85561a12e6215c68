package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/calorie-tracker-api/internal/database"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormMealRepository is a GORM implementation of MealRepository
type GormMealRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateMeal is returned when inserting a meal fails inside the add-meal transaction.
	ErrCreateMeal = errors.New("meal repository: create meal failed")
	// ErrSumMeals is returned when the same-day aggregate cannot be read inside the add-meal transaction.
	ErrSumMeals = errors.New("meal repository: sum meals failed")
)

// NewMealRepository creates a new MealRepository
func NewMealRepository(db *gorm.DB) MealRepository {
	return &GormMealRepository{db: db}
}

// Create creates a meal; Foods and RelatedData on the struct are inserted with it
func (r *GormMealRepository) Create(meal *models.Meal) error {
	return r.db.Create(meal).Error
}

// CreateWithDailyTotal inserts the meal and reads the same-day total before committing
func (r *GormMealRepository) CreateWithDailyTotal(meal *models.Meal) (int, error) {
	var total int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMeal, err)
		}

		sum, err := sumByDate(tx, meal.UserID, meal.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSumMeals, err)
		}
		total = sum

		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// FindByIDForUser finds a meal by ID that belongs to the user
func (r *GormMealRepository) FindByIDForUser(id, userID uint64, preload ...string) (*models.Meal, error) {
	var meal models.Meal
	query := r.db.Scopes(database.OwnedBy(userID))

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateWithAnnotations saves the meal and overwrites its annotation rows in a transaction
func (r *GormMealRepository) UpdateWithAnnotations(meal *models.Meal, annotation string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Foods", "RelatedData").Save(meal).Error; err != nil {
			return err
		}

		return tx.Model(&models.RelatedData{}).
			Where("meal_id = ?", meal.ID).
			Update("additional_info", annotation).Error
	})
}

// Delete deletes a meal owned by the user along with its foods and annotations
func (r *GormMealRepository) Delete(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.Scopes(database.OwnedBy(userID)).Select("id").First(&meal, id).Error; err != nil {
			return err
		}

		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.Food{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.RelatedData{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Meal{}, meal.ID).Error
	})
}

// ListByDate lists the user's meals on a date, earliest first
func (r *GormMealRepository) ListByDate(userID uint64, date string) ([]models.Meal, error) {
	var meals []models.Meal
	if err := r.db.Scopes(database.OwnedBy(userID)).
		Where("date = ?", date).
		Order("eaten_at ASC").
		Order("id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// SumByDate returns the user's calorie total on a date; 0 when there are no meals
func (r *GormMealRepository) SumByDate(userID uint64, date string) (int, error) {
	return sumByDate(r.db, userID, date)
}

func sumByDate(db *gorm.DB, userID uint64, date string) (int, error) {
	var total int64
	err := db.Model(&models.Meal{}).
		Scopes(database.OwnedBy(userID)).
		Where("date = ?", date).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// ListLatest lists the user's most recent meals
func (r *GormMealRepository) ListLatest(userID uint64, limit int) ([]models.Meal, error) {
	var meals []models.Meal
	if err := r.db.Scopes(database.OwnedBy(userID), database.NewestFirst).
		Limit(limit).
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// List lists the user's meals with pagination
func (r *GormMealRepository) List(userID uint64, params utils.PaginationParams) ([]models.Meal, int64, error) {
	var total int64
	if err := r.db.Model(&models.Meal{}).Scopes(database.OwnedBy(userID)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meals []models.Meal
	if err := r.db.Scopes(database.OwnedBy(userID), database.NewestFirst, database.Paginate(params)).
		Preload("Foods").
		Find(&meals).Error; err != nil {
		return nil, 0, err
	}

	return meals, total, nil
}

// DailyTotals groups the user's meals in [from, to] by date
func (r *GormMealRepository) DailyTotals(userID uint64, from, to string) ([]DailyTotal, error) {
	var totals []DailyTotal
	err := r.db.Model(&models.Meal{}).
		Select("date, SUM(calories) AS calories").
		Scopes(database.OwnedBy(userID)).
		Where("date BETWEEN ? AND ?", from, to).
		Group("date").
		Order("date ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
