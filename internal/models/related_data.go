package models

type RelatedData struct {
	ID             uint64 `gorm:"primarykey" json:"id"`
	MealID         uint64 `gorm:"not null" json:"meal_id"`
	AdditionalInfo string `gorm:"type:varchar(255);not null" json:"additional_info"`
}

// TableName returns the table name for RelatedData.
func (RelatedData) TableName() string {
	return "related_data"
}
