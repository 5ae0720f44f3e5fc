package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping for posts, auto-created on first use and
// auto-deleted when its last post is removed. Case-insensitively unique by
// name; never updated in place.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;autoCreateTime:false"`
}
