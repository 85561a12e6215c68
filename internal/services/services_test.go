package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/calorie-tracker-api/internal/database"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	auth     *AuthService
	accounts *AccountService
	meals    *MealService
	reports  *ReportService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	mealRepo := repository.NewMealRepository(db)

	return &testEnv{
		db:       db,
		auth:     NewAuthService(userRepo),
		accounts: NewAccountService(userRepo, profileRepo),
		meals:    NewMealService(mealRepo, profileRepo),
		reports:  NewReportService(mealRepo, profileRepo),
	}
}

func (e *testEnv) signup(t *testing.T, username string, age int, gender models.Gender) *models.User {
	t.Helper()

	user, err := e.auth.Signup(SignupInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
		Age:             age,
		Gender:          gender,
	})
	require.NoError(t, err)
	return user
}

func mealInput(date string, calories int) MealInput {
	return MealInput{
		MealType: models.MealTypeLunch,
		FoodName: "curry",
		Calories: calories,
		Date:     date,
		Time:     "12:30",
	}
}
