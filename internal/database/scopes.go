package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/calorie-tracker-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a query to rows belonging to the given user
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// NewestFirst orders meals the way history views show them
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("eaten_at DESC").Order("id DESC")
}
