package model

import (
	"time"

	"gorm.io/datatypes"
)

// CategoryLog persists one bounded category log as a single keyed JSON blob.
// The Events column holds the full newest-first event slice; the row is
// replaced wholesale on every append.
type CategoryLog struct {
	Category  string         `json:"category" gorm:"column:category;primaryKey;type:varchar(32)"`
	Events    datatypes.JSON `json:"events" gorm:"column:events;type:json"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
}
