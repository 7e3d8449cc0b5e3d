package models

import (
	"time"

	"gorm.io/datatypes"
)

type Salon struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Location string `gorm:"size:200" json:"location"`
	Address  string `gorm:"size:255" json:"address"`
	Phone    string `gorm:"size:25" json:"phone_number"`
	Email    string `gorm:"size:100" json:"email"`

	// Website content
	Description  string         `gorm:"type:text" json:"description"`
	Services     datatypes.JSON `gorm:"type:jsonb" json:"services"`
	OpeningHours string         `gorm:"type:text" json:"opening_hours"`

	LogoImageURL       string `gorm:"size:500" json:"logo_image_url"`
	CoverImageURL      string `gorm:"size:500" json:"cover_image_url"`
	AboutImageURL      string `gorm:"size:500" json:"about_image_url"`
	FooterLogoImageURL string `gorm:"size:500" json:"footer_logo_image_url"`

	HeroSubtitle    string `gorm:"size:255" json:"hero_subtitle"`
	ServicesTagline string `gorm:"size:255" json:"services_tagline"`
	GalleryTagline  string `gorm:"size:255" json:"gallery_tagline"`
	FooterAbout     string `gorm:"type:text" json:"footer_about"`

	BookingURL  string `gorm:"size:200" json:"booking_url"`
	GalleryURL  string `gorm:"size:200" json:"gallery_url"`
	ServicesURL string `gorm:"size:200" json:"services_url"`
	MapEmbedURL string `gorm:"size:500" json:"map_embed_url"`

	GalleryImages datatypes.JSON `gorm:"type:jsonb" json:"gallery_images"`
	Testimonials  datatypes.JSON `gorm:"type:jsonb" json:"testimonials"`
	SocialLinks   datatypes.JSON `gorm:"type:jsonb" json:"social_links"`

	// Site configuration & ownership.
	// SampleURL is assigned once at creation and never changes.
	SampleURL string `gorm:"size:100;uniqueIndex;not null" json:"sample_url"`

	OwnerID *uint `json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner,omitempty"`

	TemplateID *uint     `json:"template_id"`
	Template   *Template `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"template,omitempty"`

	// Claiming & lead status. Claimed, OwnerID and ClaimedAt always move together.
	Claimed       bool       `gorm:"default:false" json:"claimed"`
	ClaimedAt     *time.Time `json:"claimed_at"`
	ContactStatus string     `gorm:"size:20;default:'notContacted'" json:"contact_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
