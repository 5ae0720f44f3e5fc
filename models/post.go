package models

import (
	"time"

	"github.com/google/uuid"
)

// Author is the identity embedded in a post at creation time, copied from
// the authenticated caller. Immutable thereafter.
type Author struct {
	Email string `json:"email" db:"author_email" gorm:"type:text;not null"`
	Name  string `json:"name,omitempty" db:"author_name" gorm:"type:text"`
}

// Post is a content record owned by an author, belonging to exactly one
// Category. Category holds the denormalized display name copied from the
// category at the time of writing; CategoryID is the reference used for
// cascade decisions.
type Post struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	Category   string    `json:"category" db:"category" gorm:"type:text;not null"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null;index"`
	Slug       string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	ImageURL   string    `json:"imageUrl" db:"image_url" gorm:"type:text;not null;default:''"`
	Author     Author    `json:"author" gorm:"embedded;embeddedPrefix:author_"`
	Views      int64     `json:"views" db:"views" gorm:"type:bigint;not null;default:0"`
	// Timestamps are stamped by the content service's clock, not by GORM.
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;autoUpdateTime:false"`
}
