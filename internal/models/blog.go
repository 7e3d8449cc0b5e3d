package models

import (
	"time"

	"gorm.io/datatypes"
)

type BlogPost struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Excerpt string `gorm:"type:text" json:"excerpt"`

	CoverImageURL string `gorm:"size:500" json:"cover_image_url"`

	AuthorID *uint `json:"author_id"`
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`

	Category string         `gorm:"size:50;default:'other'" json:"category"`
	Tags     datatypes.JSON `gorm:"type:jsonb" json:"tags"`

	Published   bool       `gorm:"default:false" json:"published"`
	Featured    bool       `gorm:"default:false" json:"featured"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `gorm:"default:0" json:"view_count"`

	Comments []BlogComment `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogComment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BlogPostID uint `gorm:"index;not null" json:"blog_post_id"`

	AuthorName  string `gorm:"size:100;not null" json:"author_name"`
	AuthorEmail string `gorm:"size:100" json:"author_email"`
	Content     string `gorm:"type:text;not null" json:"content"`

	// Comments are held for moderation until an admin approves them.
	Approved bool `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
}
