package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"gorm.io/gorm"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hashed"}
	profile := &models.Profile{Age: 28, Gender: models.GenderFemale}
	require.NoError(t, repo.CreateWithProfile(user, profile))

	require.NotZero(t, user.ID)
	require.Equal(t, user.ID, profile.UserID)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_EnsureProfileIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", 40, models.GenderMale)

	// a second provisioning pass for the same user must not add a row
	again := &models.Profile{UserID: user.ID, Age: 41, Gender: models.GenderMale}
	require.NoError(t, ensureProfile(db, again))

	var profiles []models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, 41, profiles[0].Age)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	createTestUser(t, db, "carol", 30, models.GenderFemale)

	dup := &models.User{Username: "carol", Email: "other@example.com", PasswordHash: "x"}
	err := repo.CreateWithProfile(dup, &models.Profile{Age: 20, Gender: models.GenderMale})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreateUser))

	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestUserRepository_DeleteRemovesOwnedData(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	owner := createTestUser(t, db, "dave", 35, models.GenderMale)
	other := createTestUser(t, db, "erin", 35, models.GenderFemale)

	meal := createTestMeal(t, db, owner.ID, "2024-03-01", 500)
	require.NoError(t, db.Create(&models.Food{MealID: meal.ID, Name: "egg"}).Error)
	require.NoError(t, db.Create(&models.RelatedData{MealID: meal.ID, AdditionalInfo: "note"}).Error)
	otherMeal := createTestMeal(t, db, other.ID, "2024-03-01", 300)

	require.NoError(t, repo.Delete(owner.ID))

	_, err := repo.FindByID(owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Meal{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Food{}).Where("meal_id = ?", meal.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.RelatedData{}).Where("meal_id = ?", meal.ID).Count(&count)
	assert.Zero(t, count)

	// other users are untouched
	_, err = NewMealRepository(db).FindByIDForUser(otherMeal.ID, other.ID)
	assert.NoError(t, err)
}

func TestUserRepository_DeleteMissingUser(t *testing.T) {
	db := setupTestDB(t)

	err := NewUserRepository(db).Delete(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
