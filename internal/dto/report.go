package dto

import "github.com/yukikurage/calorie-tracker-api/internal/services"

// DailyCaloriesDTO is one day of the yearly calorie report
type DailyCaloriesDTO struct {
	Calories         int `json:"calories"`
	RequiredCalories int `json:"requiredCalories"`
}

// CalorieReport maps YYYY-MM-DD to the day's totals
type CalorieReport map[string]DailyCaloriesDTO

// ToCalorieReport converts the service report to its response shape
func ToCalorieReport(report map[string]services.DayReport) CalorieReport {
	out := make(CalorieReport, len(report))
	for date, day := range report {
		out[date] = DailyCaloriesDTO{
			Calories:         day.Calories,
			RequiredCalories: day.RequiredCalories,
		}
	}
	return out
}
