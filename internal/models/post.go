package models

import (
	"time"
)

// Post represents a blog post owned by a single user and tagged with any
// number of tags through the post_tags join table.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags"`
}

// FriendlyDate returns the creation timestamp rendered for display,
// e.g. "Tue Mar 04  2025, 09:30 AM". Not persisted.
func (p *Post) FriendlyDate() string {
	return p.CreatedAt.Format("Mon Jan 02  2006, 03:04 PM")
}
