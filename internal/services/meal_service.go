package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrInvalidDate  = errors.New("invalid date")
)

// TargetOutcome tells the caller which page follows a successful add.
type TargetOutcome string

const (
	WithinTarget TargetOutcome = "within_target"
	OverTarget   TargetOutcome = "over_target"
)

// MealService handles meal related business logic.
type MealService struct {
	mealRepo    repository.MealRepository
	profileRepo repository.ProfileRepository
}

// NewMealService creates a new MealService.
func NewMealService(mealRepo repository.MealRepository, profileRepo repository.ProfileRepository) *MealService {
	return &MealService{
		mealRepo:    mealRepo,
		profileRepo: profileRepo,
	}
}

// MealInput holds the fields of the meal forms.
type MealInput struct {
	MealType models.MealType
	FoodName string
	Calories int
	Date     string
	Time     string
	Foods    []string
	Notes    []string
}

// toMeal validates the input and builds an unsaved meal for the user.
// Negative calories are accepted.
func (in MealInput) toMeal(userID uint64) (*models.Meal, error) {
	verr := &ValidationError{}
	if !in.MealType.Valid() {
		verr.Add("meal_type", "meal type must be breakfast, lunch or dinner")
	}
	foodName := strings.TrimSpace(in.FoodName)
	if foodName == "" {
		verr.Add("food_name", "food name is required")
	} else if len([]rune(foodName)) > 100 {
		verr.Add("food_name", "food name must be at most 100 characters")
	}
	if _, err := utils.ParseDate(in.Date); err != nil {
		verr.Add("date", err.Error())
	}
	eatenAt, err := utils.NormalizeTimeOfDay(in.Time)
	if err != nil {
		verr.Add("time", err.Error())
	}
	for _, name := range in.Foods {
		if len([]rune(strings.TrimSpace(name))) > 100 {
			verr.Add("foods", "food names must be at most 100 characters")
		}
	}
	for _, note := range in.Notes {
		if len([]rune(note)) > 255 {
			verr.Add("notes", "notes must be at most 255 characters")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	meal := &models.Meal{
		UserID:   userID,
		MealType: in.MealType,
		FoodName: foodName,
		Calories: in.Calories,
		Date:     in.Date,
		EatenAt:  eatenAt,
	}
	for _, name := range in.Foods {
		if name = strings.TrimSpace(name); name != "" {
			meal.Foods = append(meal.Foods, models.Food{Name: name})
		}
	}
	for _, note := range in.Notes {
		if note != "" {
			meal.RelatedData = append(meal.RelatedData, models.RelatedData{AdditionalInfo: note})
		}
	}
	return meal, nil
}

// AddMealResult is the outcome of AddMeal.
type AddMealResult struct {
	Meal    *models.Meal
	Total   int
	Target  int
	Outcome TargetOutcome
}

// AddMeal stores a meal and compares the day's total, read in the same
// transaction, with the user's target. Only a total above the target is OverTarget.
func (s *MealService) AddMeal(userID uint64, input MealInput) (*AddMealResult, error) {
	meal, err := input.toMeal(userID)
	if err != nil {
		return nil, err
	}

	target, err := s.TargetFor(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.mealRepo.CreateWithDailyTotal(meal)
	if err != nil {
		return nil, persistenceError("add meal", err)
	}

	outcome := WithinTarget
	if total > target {
		outcome = OverTarget
	}

	return &AddMealResult{
		Meal:    meal,
		Total:   total,
		Target:  target,
		Outcome: outcome,
	}, nil
}

// EnterMeal stores a meal without comparing against the target.
func (s *MealService) EnterMeal(userID uint64, input MealInput) (*models.Meal, error) {
	meal, err := input.toMeal(userID)
	if err != nil {
		return nil, err
	}

	if err := s.mealRepo.Create(meal); err != nil {
		return nil, persistenceError("enter meal", err)
	}
	return meal, nil
}

// GetMeal returns a meal owned by the user.
func (s *MealService) GetMeal(userID, mealID uint64) (*models.Meal, error) {
	meal, err := s.mealRepo.FindByIDForUser(mealID, userID, "Foods", "RelatedData")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to find meal: %w", err)
	}
	return meal, nil
}

// ConfirmDelete is the read-only first step of deleting a meal.
func (s *MealService) ConfirmDelete(userID, mealID uint64) (*models.Meal, error) {
	return s.GetMeal(userID, mealID)
}

// EditMeal overwrites the meal fields and returns the stored meal. Every
// annotation of the meal is replaced by a fixed placeholder text.
func (s *MealService) EditMeal(userID, mealID uint64, input MealInput) (*models.Meal, error) {
	existing, err := s.GetMeal(userID, mealID)
	if err != nil {
		return nil, err
	}

	updated, err := input.toMeal(userID)
	if err != nil {
		return nil, err
	}

	existing.MealType = updated.MealType
	existing.FoodName = updated.FoodName
	existing.Calories = updated.Calories
	existing.Date = updated.Date
	existing.EatenAt = updated.EatenAt

	if err := s.mealRepo.UpdateWithAnnotations(existing, constants.RelatedDataPlaceholder); err != nil {
		return nil, persistenceError("edit meal", err)
	}

	return s.GetMeal(userID, mealID)
}

// DeleteMeal commits the deletion. A meal that is already gone is ErrMealNotFound.
func (s *MealService) DeleteMeal(userID, mealID uint64) error {
	if err := s.mealRepo.Delete(mealID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return persistenceError("delete meal", err)
	}
	return nil
}

// DayMeals is the list of a user's meals on one date with their total.
type DayMeals struct {
	Date  string
	Meals []models.Meal
	Total int
}

// ListMealsOnDate lists the user's meals on a date.
func (s *MealService) ListMealsOnDate(userID uint64, date string) (*DayMeals, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	meals, err := s.mealRepo.ListByDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	total := 0
	for _, m := range meals {
		total += m.Calories
	}

	return &DayMeals{Date: date, Meals: meals, Total: total}, nil
}

// DailyTotal returns the calorie total of the user's meals on a date, 0 when none.
func (s *MealService) DailyTotal(userID uint64, date string) (int, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	total, err := s.mealRepo.SumByDate(userID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to sum meals: %w", err)
	}
	return total, nil
}

// LatestMeals lists the meals shown on the home page.
func (s *MealService) LatestMeals(userID uint64) ([]models.Meal, error) {
	meals, err := s.mealRepo.ListLatest(userID, constants.HomeMealLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// ListMeals lists the user's meal history newest first.
func (s *MealService) ListMeals(userID uint64, params utils.PaginationParams) ([]models.Meal, int64, error) {
	meals, total, err := s.mealRepo.List(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, total, nil
}

// TargetFor returns the daily calorie target from the user's profile.
func (s *MealService) TargetFor(userID uint64) (int, error) {
	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return 0, persistenceError("load profile", err)
	}
	return ProfileTarget(profile), nil
}
