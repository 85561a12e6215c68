package models

// Food is a sub-item entered together with its meal.
type Food struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	MealID uint64 `gorm:"not null" json:"meal_id"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
}
