package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that are not declared on the model structs
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Latest meals on the home page
		{"meals", "idx_meals_user_eaten_at", "user_id, eaten_at"},

		// Cascade lookups when a meal is deleted
		{"foods", "idx_foods_meal_id", "meal_id"},
		{"related_data", "idx_related_data_meal_id", "meal_id"},
	}

	for _, idx := range indexes {
		// The migrator answers HasIndex on mysql, postgres and sqlite alike
		if db.Migrator().HasIndex(idx.table, idx.name) {
			logrus.Debugf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
