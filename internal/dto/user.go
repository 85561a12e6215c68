package dto

import "github.com/yukikurage/calorie-tracker-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileDTO represents a profile in API responses
type ProfileDTO struct {
	Age            int           `json:"age"`
	Gender         models.Gender `json:"gender"`
	TargetCalories int           `json:"target_calories"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile, target int) ProfileDTO {
	return ProfileDTO{
		Age:            profile.Age,
		Gender:         profile.Gender,
		TargetCalories: target,
	}
}
