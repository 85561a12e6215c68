package models

import "time"

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// Valid reports whether t is one of the fixed meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// Meal is one recorded eating event. Date is stored as YYYY-MM-DD and
// EatenAt as HH:MM or HH:MM:SS so both sort lexically on every driver.
type Meal struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_meals_user_date,priority:1" json:"user_id"`
	MealType  MealType  `gorm:"type:varchar(10);not null" json:"meal_type"`
	FoodName  string    `gorm:"type:varchar(100);not null" json:"food_name"`
	Calories  int       `gorm:"not null" json:"calories"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_meals_user_date,priority:2" json:"date"`
	EatenAt   string    `gorm:"type:varchar(8);not null" json:"eaten_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Foods       []Food        `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods,omitempty"`
	RelatedData []RelatedData `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"related_data,omitempty"`
}
