package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
)

func TestMealService_AddMeal_TargetBoundary(t *testing.T) {
	env := setupTestEnv(t)
	// female, 25 years old: target 2000
	user := env.signup(t, "alice", 25, models.GenderFemale)

	result, err := env.meals.AddMeal(user.ID, mealInput("2024-05-01", 1500))
	require.NoError(t, err)
	require.Equal(t, 2000, result.Target)
	require.Equal(t, 1500, result.Total)
	require.Equal(t, WithinTarget, result.Outcome)

	result, err = env.meals.AddMeal(user.ID, mealInput("2024-05-01", 500))
	require.NoError(t, err)
	require.Equal(t, 2000, result.Total)
	require.Equal(t, WithinTarget, result.Outcome, "a total equal to the target is within target")

	result, err = env.meals.AddMeal(user.ID, mealInput("2024-05-01", 1))
	require.NoError(t, err)
	require.Equal(t, 2001, result.Total)
	require.Equal(t, OverTarget, result.Outcome)
}

func TestMealService_AddMeal_TotalIsPerUserAndDate(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signup(t, "alice", 25, models.GenderMale)
	bob := env.signup(t, "bob", 25, models.GenderMale)

	_, err := env.meals.AddMeal(bob.ID, mealInput("2024-05-01", 2000))
	require.NoError(t, err)
	_, err = env.meals.AddMeal(alice.ID, mealInput("2024-04-30", 2000))
	require.NoError(t, err)

	result, err := env.meals.AddMeal(alice.ID, mealInput("2024-05-01", 700))
	require.NoError(t, err)
	assert.Equal(t, 700, result.Total)
	assert.Equal(t, 2400, result.Target)
}

func TestMealService_AddMeal_StoresFoodsAndNotes(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	input := mealInput("2024-05-01", 800)
	input.Foods = []string{"rice", " ", "miso soup"}
	input.Notes = []string{"at the office"}

	result, err := env.meals.AddMeal(user.ID, input)
	require.NoError(t, err)

	meal, err := env.meals.GetMeal(user.ID, result.Meal.ID)
	require.NoError(t, err)
	require.Len(t, meal.Foods, 2)
	require.Len(t, meal.RelatedData, 1)
	assert.Equal(t, "12:30:00", meal.EatenAt)
}

func TestMealService_AddMeal_Validation(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	_, err := env.meals.AddMeal(user.ID, MealInput{
		MealType: "snack",
		FoodName: "",
		Calories: 100,
		Date:     "2024-13-01",
		Time:     "25:00",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "meal_type")
	assert.Contains(t, verr.Fields, "food_name")
	assert.Contains(t, verr.Fields, "date")
	assert.Contains(t, verr.Fields, "time")

	var count int64
	require.NoError(t, env.db.Model(&models.Meal{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMealService_AddMeal_AcceptsNegativeCalories(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	result, err := env.meals.AddMeal(user.ID, mealInput("2024-05-01", -100))
	require.NoError(t, err)
	assert.Equal(t, -100, result.Total)
}

func TestMealService_EditMeal(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	input := mealInput("2024-05-01", 800)
	input.Notes = []string{"first", "second"}
	added, err := env.meals.AddMeal(user.ID, input)
	require.NoError(t, err)

	edited, err := env.meals.EditMeal(user.ID, added.Meal.ID, MealInput{
		MealType: models.MealTypeDinner,
		FoodName: "ramen",
		Calories: 900,
		Date:     "2024-05-02",
		Time:     "19:05:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MealTypeDinner, edited.MealType)
	assert.Equal(t, "ramen", edited.FoodName)
	assert.Equal(t, 900, edited.Calories)
	assert.Equal(t, "2024-05-02", edited.Date)
	assert.Equal(t, "19:05:00", edited.EatenAt)

	require.Len(t, edited.RelatedData, 2)
	for _, rd := range edited.RelatedData {
		assert.Equal(t, constants.RelatedDataPlaceholder, rd.AdditionalInfo)
	}
}

func TestMealService_EditMeal_NotOwned(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signup(t, "alice", 40, models.GenderMale)
	mallory := env.signup(t, "mallory", 40, models.GenderMale)

	added, err := env.meals.AddMeal(alice.ID, mealInput("2024-05-01", 800))
	require.NoError(t, err)

	_, err = env.meals.EditMeal(mallory.ID, added.Meal.ID, mealInput("2024-05-01", 1))
	require.ErrorIs(t, err, ErrMealNotFound)

	_, err = env.meals.EditMeal(alice.ID, added.Meal.ID+100, mealInput("2024-05-01", 1))
	require.ErrorIs(t, err, ErrMealNotFound)

	meal, err := env.meals.GetMeal(alice.ID, added.Meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 800, meal.Calories)
}

func TestMealService_TwoPhaseDelete(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signup(t, "alice", 40, models.GenderMale)
	mallory := env.signup(t, "mallory", 40, models.GenderMale)

	input := mealInput("2024-05-01", 800)
	input.Foods = []string{"rice"}
	added, err := env.meals.AddMeal(alice.ID, input)
	require.NoError(t, err)

	_, err = env.meals.ConfirmDelete(mallory.ID, added.Meal.ID)
	require.ErrorIs(t, err, ErrMealNotFound)

	confirmed, err := env.meals.ConfirmDelete(alice.ID, added.Meal.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Meal.ID, confirmed.ID)

	// confirming does not remove anything
	_, err = env.meals.GetMeal(alice.ID, added.Meal.ID)
	require.NoError(t, err)

	require.ErrorIs(t, env.meals.DeleteMeal(mallory.ID, added.Meal.ID), ErrMealNotFound)
	require.NoError(t, env.meals.DeleteMeal(alice.ID, added.Meal.ID))
	require.ErrorIs(t, env.meals.DeleteMeal(alice.ID, added.Meal.ID), ErrMealNotFound)

	var foods int64
	require.NoError(t, env.db.Model(&models.Food{}).Count(&foods).Error)
	assert.Zero(t, foods)
}

func TestMealService_DailyTotal(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	total, err := env.meals.DailyTotal(user.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Zero(t, total)

	for _, cal := range []int{300, 450, 1200} {
		_, err := env.meals.EnterMeal(user.ID, mealInput("2024-05-01", cal))
		require.NoError(t, err)
	}

	total, err = env.meals.DailyTotal(user.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 1950, total)

	day, err := env.meals.ListMealsOnDate(user.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, day.Meals, 3)
	assert.Equal(t, total, day.Total)

	_, err = env.meals.DailyTotal(user.ID, "not-a-date")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestMealService_LatestAndList(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signup(t, "alice", 40, models.GenderMale)

	for day := 1; day <= 7; day++ {
		_, err := env.meals.EnterMeal(user.ID, mealInput(fmt.Sprintf("2024-05-%02d", day), day*100))
		require.NoError(t, err)
	}

	latest, err := env.meals.LatestMeals(user.ID)
	require.NoError(t, err)
	require.Len(t, latest, constants.HomeMealLimit)
	assert.Equal(t, "2024-05-07", latest[0].Date)

	page, total, err := env.meals.ListMeals(user.ID, utils.PaginationParams{Page: 2, Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, page, 3)
	assert.Equal(t, "2024-05-04", page[0].Date)
}
