package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MagazineIssue is one published issue of the periodical.
type MagazineIssue struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Title           string         `json:"title" gorm:"size:250;not null" binding:"required,max=250"`
	Slug            string         `json:"slug" gorm:"size:270;uniqueIndex;not null" binding:"omitempty,max=270"`
	Description     *string        `json:"description" gorm:"type:text"`
	CoverImage      string         `json:"coverImage"`
	CoverImageURL   *string        `json:"coverImageUrl" binding:"omitempty,url"`
	VideoPreviewURL *string        `json:"videoPreviewUrl" binding:"omitempty,url"`
	PublishedDate   datatypes.Date `json:"publishedDate" gorm:"index"`
	IsFeatured      bool           `json:"isFeatured" gorm:"default:false"`
	IsPublished     bool           `json:"isPublished"`
	CreatedAt       time.Time      `json:"createdAt"`

	// Relations
	Categories  []Category `json:"categories,omitempty" gorm:"many2many:magazine_issue_categories;constraint:OnDelete:CASCADE"`
	CategoryIDs []uint     `json:"categoryIds,omitempty" gorm:"-"`
}

func NewMagazineIssue() *MagazineIssue {
	return &MagazineIssue{
		PublishedDate: datatypes.Date(time.Now()),
		IsPublished:   true,
	}
}

func (m *MagazineIssue) BeforeSave(tx *gorm.DB) error {
	if m.Slug != "" {
		return nil
	}
	slug, err := uniqueSlug(tx, &MagazineIssue{}, m.Title, m.ID)
	if err != nil {
		return err
	}
	m.Slug = slug
	return nil
}

func (m MagazineIssue) DisplayImage() string {
	return displayImage(m.CoverImage, m.CoverImageURL)
}
