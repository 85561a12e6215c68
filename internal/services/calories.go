package services

import "github.com/yukikurage/calorie-tracker-api/internal/models"

// TargetCalories returns the daily calorie target for an age and gender.
// Anything other than male uses the female table.
func TargetCalories(age int, gender models.Gender) int {
	if gender == models.GenderMale {
		switch {
		case age <= 30:
			return 2400
		case age <= 50:
			return 2200
		default:
			return 2000
		}
	}

	switch {
	case age <= 30:
		return 2000
	case age <= 50:
		return 1800
	default:
		return 1600
	}
}

// ProfileTarget returns the target for a profile.
func ProfileTarget(p *models.Profile) int {
	return TargetCalories(p.Age, p.Gender)
}
