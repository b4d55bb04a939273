package models

import (
	"time"
)

// ResourceType classifies a knowledge-center entry.
type ResourceType string

const (
	ResourceHighlight ResourceType = "highlight"
	ResourceCaseStudy ResourceType = "case_study"
	ResourceWebinar   ResourceType = "webinar"
	ResourceLearning  ResourceType = "learning"
	ResourceOther     ResourceType = "other"
)

var ResourceTypeChoices = []Choice{
	{Value: string(ResourceHighlight), Label: "Highlight"},
	{Value: string(ResourceCaseStudy), Label: "Case Study"},
	{Value: string(ResourceWebinar), Label: "Webinar"},
	{Value: string(ResourceLearning), Label: "Learning"},
	{Value: string(ResourceOther), Label: "Other / Future"},
}

// Resource is a knowledge-center entry, distinct from a news article.
type Resource struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"size:255;not null" binding:"required,max=255"`
	Description  string       `json:"description" gorm:"type:text"`
	ResourceType ResourceType `json:"resourceType" gorm:"size:20;not null" binding:"required,oneof=highlight case_study webinar learning other"`
	Image        string       `json:"image"`
	ImageURL     *string      `json:"imageUrl" binding:"omitempty,url"`
	Link         string       `json:"link"` // Internal or external link (Pinterest, YouTube, Medium, etc.)
	IsFeatured   bool         `json:"isFeatured" gorm:"default:false"`
	Published    bool         `json:"published"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"index"`

	// Relations
	Categories  []Category `json:"categories,omitempty" gorm:"many2many:resource_categories;constraint:OnDelete:CASCADE"`
	CategoryIDs []uint     `json:"categoryIds,omitempty" gorm:"-"`
}

func NewResource() *Resource {
	return &Resource{Published: true}
}

func (r Resource) DisplayImage() string {
	return displayImage(r.Image, r.ImageURL)
}

func (r Resource) CategoryNames() []string {
	return categoryNames(r.Categories)
}
