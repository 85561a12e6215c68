package models

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Valid reports whether g is one of the supported genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Profile holds the per-user data the calorie target is derived from.
type Profile struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Age       int       `gorm:"not null;default:0" json:"age"`
	Gender    Gender    `gorm:"type:varchar(1);not null;default:''" json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
