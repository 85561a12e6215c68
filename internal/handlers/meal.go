package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
)

const mealNotFoundMessage = "該当する食事が見つかりません。"

// MealHandler serves the meal pages.
type MealHandler struct {
	mealService *services.MealService
	aiService   *services.AIService
}

// NewMealHandler creates a new MealHandler. aiService may be nil.
func NewMealHandler(mealService *services.MealService, aiService *services.AIService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		aiService:   aiService,
	}
}

// mealRequest is the meal form shared by the add, enter and edit pages.
type mealRequest struct {
	MealType string   `form:"meal_type" json:"meal_type" binding:"required,oneof=breakfast lunch dinner"`
	FoodName string   `form:"food_name" json:"food_name" binding:"required,max=100"`
	Calories *int     `form:"calories" json:"calories" binding:"required"`
	Date     string   `form:"date" json:"date"`
	EatenAt  string   `form:"eaten_at" json:"eaten_at" binding:"required"`
	Foods    []string `form:"foods" json:"foods"`
	Notes    []string `form:"notes" json:"notes"`
}

func (r mealRequest) input(date string) services.MealInput {
	return services.MealInput{
		MealType: models.MealType(r.MealType),
		FoodName: r.FoodName,
		Calories: *r.Calories,
		Date:     date,
		Time:     r.EatenAt,
		Foods:    r.Foods,
		Notes:    r.Notes,
	}
}

// Home lists the latest meals of the user.
func (h *MealHandler) Home(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	meals, err := h.mealService.LatestMeals(user.ID)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HomePageResponse{
		Page:     dto.PageHome,
		User:     dto.ToUserDTO(*user),
		Meals:    dto.ToMealDTOs(meals),
		Messages: popFlashes(c),
	})
}

// AddMealPage shows the target and the total of the selected date.
func (h *MealHandler) AddMealPage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	date := c.DefaultQuery("date", utils.Today())
	total, err := h.mealService.DailyTotal(userID, date)
	if err != nil {
		respondFormError(c, dto.PageAddMeal, err)
		return
	}
	target, err := h.mealService.TargetFor(userID)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddMealPageResponse{
		Page:           dto.PageAddMeal,
		SelectedDate:   date,
		TargetCalories: target,
		TotalCalories:  total,
	})
}

// AddMeal stores the meal and redirects to the warning page when the day
// is over target, otherwise to the success page.
func (h *MealHandler) AddMeal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req mealRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageAddMeal, err)
		return
	}

	date := req.Date
	if date == "" {
		date = utils.Today()
	}

	result, err := h.mealService.AddMeal(userID, req.input(date))
	if err != nil {
		respondFormError(c, dto.PageAddMeal, err)
		return
	}
	middleware.RecordMealAdded(string(result.Outcome))

	if result.Outcome == services.OverTarget {
		redirect(c, "/calorie_warning/")
		return
	}
	redirect(c, "/success/")
}

// EnterMealDataPage lists the meals of the selected date.
func (h *MealHandler) EnterMealDataPage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	date := c.Query("selected_date")
	if date == "" {
		c.JSON(http.StatusOK, dto.DayMealsPageResponse{
			Page:  dto.PageEnterMealData,
			Meals: []dto.MealDTO{},
		})
		return
	}

	day, err := h.mealService.ListMealsOnDate(userID, date)
	if err != nil {
		respondFormError(c, dto.PageEnterMealData, err)
		return
	}

	c.JSON(http.StatusOK, dto.DayMealsPageResponse{
		Page:          dto.PageEnterMealData,
		SelectedDate:  day.Date,
		Meals:         dto.ToMealDTOs(day.Meals),
		TotalCalories: day.Total,
	})
}

// EnterMealData stores a meal on the selected date without the target check.
func (h *MealHandler) EnterMealData(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req mealRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageEnterMealData, err)
		return
	}

	date := c.Query("selected_date")
	if date == "" {
		date = req.Date
	}

	if _, err := h.mealService.EnterMeal(userID, req.input(date)); err != nil {
		respondFormError(c, dto.PageEnterMealData, err)
		return
	}

	redirect(c, "/home/")
}

// SelectedDatePage echoes the chosen date.
func (h *MealHandler) SelectedDatePage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":          dto.PageSelectedDate,
		"selected_date": c.Query("selected_date"),
	})
}

// loadMeal fetches the meal named by the route. Missing meals send the user
// home with a message.
func (h *MealHandler) loadMeal(c *gin.Context) (*models.Meal, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	mealID, ok := parseIDParam(c, "meal_id")
	if !ok {
		addFlash(c, mealNotFoundMessage)
		redirect(c, "/home/")
		return nil, false
	}

	meal, err := h.mealService.GetMeal(userID, mealID)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			addFlash(c, mealNotFoundMessage)
			redirect(c, "/home/")
			return nil, false
		}
		respondInternalError(c, err)
		return nil, false
	}
	return meal, true
}

// EditMealPage shows the meal in the edit form.
func (h *MealHandler) EditMealPage(c *gin.Context) {
	meal, ok := h.loadMeal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MealPageResponse{
		Page: dto.PageEditMeal,
		Meal: dto.ToMealDTO(*meal),
	})
}

// EditMeal saves the form and shows the edit complete page with a link to
// the day of the meal.
func (h *MealHandler) EditMeal(c *gin.Context) {
	meal, ok := h.loadMeal(c)
	if !ok {
		return
	}

	var req mealRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageEditMeal, err)
		return
	}

	date := req.Date
	if date == "" {
		date = meal.Date
	}

	updated, err := h.mealService.EditMeal(meal.UserID, meal.ID, req.input(date))
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			addFlash(c, mealNotFoundMessage)
			redirect(c, "/home/")
			return
		}
		respondFormError(c, dto.PageEditMeal, err)
		return
	}

	addFlash(c, "食事情報が更新されました。")
	c.JSON(http.StatusOK, dto.EditCompletePageResponse{
		Page:        dto.PageEditComplete,
		NewData:     dto.ToMealDTO(*updated),
		RedirectURL: "/enter_meal_data/?selected_date=" + url.QueryEscape(updated.Date),
	})
}

// ConfirmDeletePage is the read-only first step of deleting a meal.
func (h *MealHandler) ConfirmDeletePage(c *gin.Context) {
	meal, ok := h.loadMeal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MealPageResponse{
		Page: dto.PageConfirmDelete,
		Meal: dto.ToMealDTO(*meal),
	})
}

// DeleteMealPage never deletes; it sends plain navigation to the confirmation.
func (h *MealHandler) DeleteMealPage(c *gin.Context) {
	redirect(c, "/meal/confirm-delete/"+c.Param("meal_id")+"/")
}

// DeleteMeal commits the deletion.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	mealID, ok := parseIDParam(c, "meal_id")
	if !ok {
		addFlash(c, mealNotFoundMessage)
		redirect(c, "/home/")
		return
	}

	if err := h.mealService.DeleteMeal(userID, mealID); err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			addFlash(c, mealNotFoundMessage)
			redirect(c, "/home/")
			return
		}
		respondInternalError(c, err)
		return
	}

	addFlash(c, "食事データが削除されました。")
	redirect(c, "/meal/delete/complete/")
}

// ListMeals returns the meal history with pagination.
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	meals, total, err := h.mealService.ListMeals(userID, params)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMealListResponse(meals, params.Page, params.Limit, total))
}

// EstimateCalories suggests a calorie count for a food using the AI service.
func (h *MealHandler) EstimateCalories(c *gin.Context) {
	type EstimateRequest struct {
		FoodName string `form:"food_name" json:"food_name" binding:"required,max=100"`
	}

	var req EstimateRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", fieldErrors(err))
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	estimate, err := h.aiService.EstimateCalories(c.Request.Context(), req.FoodName)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			apierrors.BadRequestWithDetails(c, "Invalid request body", verr.Fields)
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, err.Error())
		default:
			_ = c.Error(err)
			apierrors.ServiceUnavailable(c, "Failed to estimate calories")
		}
		return
	}

	c.JSON(http.StatusOK, dto.CalorieEstimateDTO{
		FoodName: estimate.FoodName,
		Calories: estimate.Calories,
	})
}
