package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article is a news item shown on the news and insights pages.
type Article struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"size:250;not null" binding:"required,max=250"`
	Slug          string         `json:"slug" gorm:"size:270;uniqueIndex;not null" binding:"omitempty,max=270"`
	Excerpt       *string        `json:"excerpt" gorm:"type:text"`
	Summary       *string        `json:"summary" gorm:"type:text"`
	Body          *string        `json:"body" gorm:"type:text"`
	Image         string         `json:"image"`
	ImageURL      *string        `json:"imageUrl" binding:"omitempty,url"`
	PublishedDate datatypes.Date `json:"publishedDate" gorm:"index"`
	AuthorID      *uint          `json:"authorId" gorm:"index"`
	IsFeatured    bool           `json:"isFeatured" gorm:"default:false"`
	IsPublished   bool           `json:"isPublished"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	// Relations
	Author      *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" binding:"-"`
	Categories  []Category `json:"categories,omitempty" gorm:"many2many:article_categories;constraint:OnDelete:CASCADE"`
	CategoryIDs []uint     `json:"categoryIds,omitempty" gorm:"-"`
}

// NewArticle returns an article carrying the column defaults.
func NewArticle() *Article {
	return &Article{
		PublishedDate: datatypes.Date(time.Now()),
		IsPublished:   true,
	}
}

func (a *Article) BeforeSave(tx *gorm.DB) error {
	if a.Slug != "" {
		return nil
	}
	slug, err := uniqueSlug(tx, &Article{}, a.Title, a.ID)
	if err != nil {
		return err
	}
	a.Slug = slug
	return nil
}

// DisplayImage is the image to render for the article.
func (a Article) DisplayImage() string {
	return displayImage(a.Image, a.ImageURL)
}

// CategoryNames lists the names of the loaded categories.
func (a Article) CategoryNames() []string {
	return categoryNames(a.Categories)
}

func (a Article) String() string {
	return a.Title
}
