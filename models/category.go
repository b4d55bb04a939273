package models

import (
	"fmt"
	"time"

	"github.com/callsoso/callsoso/utils"
	"gorm.io/gorm"
)

// PlaceholderImage is served when a record has neither an upload nor an external image.
const PlaceholderImage = "/static/images/placeholder.jpg"

// maxSlugBase bounds the slugified title before any numeric suffix is added.
const maxSlugBase = 250

// Category is the shared taxonomy for articles, resources and magazine issues.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null" binding:"required,max=100"`
	Slug      string    `json:"slug" gorm:"size:120;uniqueIndex;not null" binding:"omitempty,max=120"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName sets the table name for Category model
func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug != "" {
		return nil
	}
	slug, err := uniqueSlug(tx, &Category{}, c.Name, c.ID)
	if err != nil {
		return err
	}
	c.Slug = slug
	return nil
}

// uniqueSlug slugifies source and appends -1, -2, ... until no other row of
// model uses it. The row with id (when non-zero) is ignored.
func uniqueSlug(tx *gorm.DB, model interface{}, source string, id uint) (string, error) {
	base := utils.Slugify(source)
	if len(base) > maxSlugBase {
		base = base[:maxSlugBase]
	}
	if base == "" {
		base = "untitled"
	}

	slug := base
	for i := 1; ; i++ {
		var count int64
		q := tx.Session(&gorm.Session{NewDB: true}).Model(model).Where("slug = ?", slug)
		if id != 0 {
			q = q.Where("id <> ?", id)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// displayImage resolves the image shown for a record.
func displayImage(upload string, url *string) string {
	if upload != "" {
		return "/media/" + upload
	}
	if url != nil && *url != "" {
		return *url
	}
	return PlaceholderImage
}

// categoryNames returns the names of the given categories in order.
func categoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
