package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"github.com/yukikurage/calorie-tracker-api/internal/utils"
)

var ErrInvalidYear = errors.New("year must be between 1 and 9999")

// DayReport is one entry of the yearly report.
type DayReport struct {
	Calories         int
	RequiredCalories int
}

// ReportService aggregates meals for reporting.
type ReportService struct {
	mealRepo    repository.MealRepository
	profileRepo repository.ProfileRepository
}

// NewReportService creates a new ReportService.
func NewReportService(mealRepo repository.MealRepository, profileRepo repository.ProfileRepository) *ReportService {
	return &ReportService{
		mealRepo:    mealRepo,
		profileRepo: profileRepo,
	}
}

// YearlyReport returns the per-day totals of the year keyed by YYYY-MM-DD.
// Days without meals are left out.
func (s *ReportService) YearlyReport(userID uint64, year int) (map[string]DayReport, error) {
	if year < 1 || year > 9999 {
		return nil, ErrInvalidYear
	}

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, persistenceError("load profile", err)
	}
	required := ProfileTarget(profile)

	from, to := utils.YearRange(year)
	totals, err := s.mealRepo.DailyTotals(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate meals: %w", err)
	}

	report := make(map[string]DayReport, len(totals))
	for _, t := range totals {
		report[t.Date] = DayReport{
			Calories:         int(t.Calories),
			RequiredCalories: required,
		}
	}
	return report, nil
}
