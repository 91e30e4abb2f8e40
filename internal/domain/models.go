// Package domain defines the persistence model for the example notes
// service. The type here is mapped with GORM and exists purely to exercise
// the apierr/respond packages against a realistic CRUD surface.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Note is a short text document addressed by a URL-safe slug.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Slug: unique, URL-safe identifier used in routes (/notes/{slug}).
//   - Title: human-readable note title.
//   - Body: full note content.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Note struct {
	ID        string         `json:"id"    gorm:"type:char(36);primaryKey"`
	Slug      string         `json:"slug"  gorm:"type:varchar(80);not null;uniqueIndex:ux_notes_slug"`
	Title     string         `json:"title" gorm:"type:varchar(255);not null"`
	Body      string         `json:"body"  gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"     gorm:"index"`
}

// TableName returns the database table name for Note.
func (Note) TableName() string { return "notes" }
