package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/calorie-tracker-api/internal/database"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, age int, gender models.Gender) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hashed"}
	profile := &models.Profile{Age: age, Gender: gender}
	require.NoError(t, NewUserRepository(db).CreateWithProfile(user, profile))
	return user
}

func createTestMeal(t *testing.T, db *gorm.DB, userID uint64, date string, calories int) *models.Meal {
	t.Helper()

	meal := &models.Meal{
		UserID:   userID,
		MealType: models.MealTypeLunch,
		FoodName: "rice",
		Calories: calories,
		Date:     date,
		EatenAt:  "12:00:00",
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}
