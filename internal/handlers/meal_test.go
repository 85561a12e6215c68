package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
)

func (suite *HandlerTestSuite) latestMeal() models.Meal {
	var meal models.Meal
	suite.Require().NoError(suite.db.Order("id DESC").First(&meal).Error)
	return meal
}

func (suite *HandlerTestSuite) TestAddMeal_Outcome() {
	// female, 25: target 2000
	b := suite.register("alice", "25", "F")

	w := b.post("/add_meal/", mealForm("2024-05-01", "2000"))
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/success/", w.Header().Get("Location"))

	w = b.post("/add_meal/", mealForm("2024-05-01", "1"))
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/calorie_warning/", w.Header().Get("Location"))

	w = b.get("/add_meal/?date=2024-05-01")
	suite.Equal(http.StatusOK, w.Code)
	var page dto.AddMealPageResponse
	suite.decode(w, &page)
	suite.Equal(2000, page.TargetCalories)
	suite.Equal(2001, page.TotalCalories)
	suite.Equal("2024-05-01", page.SelectedDate)
}

func (suite *HandlerTestSuite) TestAddMeal_InvalidForm() {
	b := suite.register("alice", "25", "F")

	form := mealForm("2024-05-01", "300")
	form.Set("meal_type", "snack")
	w := b.post("/add_meal/", form)
	suite.Equal(http.StatusBadRequest, w.Code)

	form = mealForm("2024-02-30", "300")
	w = b.post("/add_meal/", form)
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Meal{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestEnterMealData() {
	b := suite.register("alice", "25", "F")

	w := b.post("/enter_meal_data/?selected_date=2024-06-01", mealForm("", "450"))
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/home/", w.Header().Get("Location"))

	w = b.get("/enter_meal_data/?selected_date=2024-06-01")
	suite.Equal(http.StatusOK, w.Code)
	var page dto.DayMealsPageResponse
	suite.decode(w, &page)
	suite.Len(page.Meals, 1)
	suite.Equal(450, page.TotalCalories)
}

func (suite *HandlerTestSuite) TestEditMeal() {
	b := suite.register("alice", "25", "F")
	form := mealForm("2024-05-01", "500")
	form.Add("notes", "from the cafeteria")
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", form).Code)
	meal := suite.latestMeal()

	path := fmt.Sprintf("/edit-meal/%d/", meal.ID)
	w := b.get(path)
	suite.Equal(http.StatusOK, w.Code)

	edit := mealForm("2024-05-03", "650")
	edit.Set("meal_type", "dinner")
	w = b.post(path, edit)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var page dto.EditCompletePageResponse
	suite.decode(w, &page)
	suite.Equal(dto.PageEditComplete, page.Page)
	suite.Equal(650, page.NewData.Calories)
	suite.Equal(models.MealTypeDinner, page.NewData.MealType)
	suite.Equal("/enter_meal_data/?selected_date=2024-05-03", page.RedirectURL)
	suite.Equal([]string{constants.RelatedDataPlaceholder}, page.NewData.RelatedData)
}

func (suite *HandlerTestSuite) TestEditMeal_OtherUsersMeal() {
	alice := suite.register("alice", "25", "F")
	suite.Require().Equal(http.StatusSeeOther, alice.post("/add_meal/", mealForm("2024-05-01", "500")).Code)
	meal := suite.latestMeal()

	mallory := suite.register("mallory", "25", "M")
	path := fmt.Sprintf("/edit-meal/%d/", meal.ID)

	w := mallory.post(path, mealForm("2024-05-01", "1"))
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/home/", w.Header().Get("Location"))

	w = mallory.get("/home/")
	var home dto.HomePageResponse
	suite.decode(w, &home)
	suite.Contains(home.Messages, mealNotFoundMessage)

	stored := suite.latestMeal()
	suite.Equal(500, stored.Calories)
}

func (suite *HandlerTestSuite) TestDeleteMeal_TwoPhase() {
	b := suite.register("alice", "25", "F")
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", mealForm("2024-05-01", "500")).Code)
	meal := suite.latestMeal()

	w := b.get(fmt.Sprintf("/meal/confirm-delete/%d/", meal.ID))
	suite.Equal(http.StatusOK, w.Code)

	// plain navigation to the delete url only leads to the confirmation
	w = b.get(fmt.Sprintf("/meal/delete/%d/", meal.ID))
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal(fmt.Sprintf("/meal/confirm-delete/%d/", meal.ID), w.Header().Get("Location"))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Meal{}).Count(&count).Error)
	suite.EqualValues(1, count)

	w = b.post(fmt.Sprintf("/meal/delete/%d/", meal.ID), nil)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/meal/delete/complete/", w.Header().Get("Location"))
	suite.Equal(http.StatusOK, b.get("/meal/delete/complete/").Code)

	suite.Require().NoError(suite.db.Model(&models.Meal{}).Count(&count).Error)
	suite.Zero(count)

	w = b.post(fmt.Sprintf("/meal/delete/%d/", meal.ID), nil)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/home/", w.Header().Get("Location"))
}

func (suite *HandlerTestSuite) TestHome_LatestFive() {
	b := suite.register("alice", "25", "F")
	for day := 1; day <= 6; day++ {
		w := b.post("/add_meal/", mealForm(fmt.Sprintf("2024-05-%02d", day), "100"))
		suite.Require().Equal(http.StatusSeeOther, w.Code)
	}

	var home dto.HomePageResponse
	suite.decode(b.get("/home/"), &home)
	suite.Require().Len(home.Meals, constants.HomeMealLimit)
	suite.Equal("2024-05-06", home.Meals[0].Date)

	var list dto.MealListResponse
	suite.decode(b.get("/meals/?page=2&limit=4"), &list)
	suite.EqualValues(6, list.TotalCount)
	suite.Equal(2, list.TotalPages)
	suite.Len(list.Meals, 2)
}

func (suite *HandlerTestSuite) TestCaloriesByYear() {
	b := suite.register("alice", "40", "M")
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", mealForm("2024-03-01", "500")).Code)
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", mealForm("2024-03-01", "700")).Code)
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", mealForm("2025-01-01", "300")).Code)

	w := b.get("/api/calories/2024/")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"2024-03-01": {"calories": 1200, "requiredCalories": 2200}}`, w.Body.String())

	suite.Equal(http.StatusBadRequest, b.get("/api/calories/abc/").Code)
}

func (suite *HandlerTestSuite) TestEstimateCalories_NotConfigured() {
	b := suite.register("alice", "40", "M")

	w := b.post("/api/calories/estimate/", url.Values{"food_name": {"ramen"}})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}
