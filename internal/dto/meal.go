package dto

import (
	"time"

	"github.com/yukikurage/calorie-tracker-api/internal/models"
)

// MealDTO represents a meal in API responses
type MealDTO struct {
	ID          uint64          `json:"id"`
	MealType    models.MealType `json:"meal_type"`
	FoodName    string          `json:"food_name"`
	Calories    int             `json:"calories"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Foods       []string        `json:"foods,omitempty"`
	RelatedData []string        `json:"related_data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MealListResponse represents a paginated list of meals
type MealListResponse struct {
	Meals      []MealDTO `json:"meals"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// CalorieEstimateDTO is the answer of the calorie estimation endpoint
type CalorieEstimateDTO struct {
	FoodName string `json:"food_name"`
	Calories int    `json:"calories"`
}

// ToMealDTO converts a Meal model to MealDTO
func ToMealDTO(meal models.Meal) MealDTO {
	dto := MealDTO{
		ID:        meal.ID,
		MealType:  meal.MealType,
		FoodName:  meal.FoodName,
		Calories:  meal.Calories,
		Date:      meal.Date,
		Time:      meal.EatenAt,
		CreatedAt: meal.CreatedAt,
		UpdatedAt: meal.UpdatedAt,
	}

	// Include sub-items if preloaded
	for _, food := range meal.Foods {
		dto.Foods = append(dto.Foods, food.Name)
	}
	for _, rd := range meal.RelatedData {
		dto.RelatedData = append(dto.RelatedData, rd.AdditionalInfo)
	}

	return dto
}

// ToMealDTOs converts a slice of meals
func ToMealDTOs(meals []models.Meal) []MealDTO {
	items := make([]MealDTO, len(meals))
	for i, meal := range meals {
		items[i] = ToMealDTO(meal)
	}
	return items
}

// ToMealListResponse converts a slice of meals to MealListResponse
func ToMealListResponse(meals []models.Meal, page, pageSize int, totalCount int64) MealListResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return MealListResponse{
		Meals:      ToMealDTOs(meals),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
