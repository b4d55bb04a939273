package models

import (
	"time"

	"gorm.io/datatypes"
)

// PopularArticle is an external article promoted in the sidebar.
type PopularArticle struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	Title    string         `json:"title" gorm:"size:250;not null" binding:"required,max=250"`
	URL      string         `json:"url" gorm:"size:500;not null;uniqueIndex" binding:"required,url,max=500"`
	Image    string         `json:"image"`
	ImageURL *string        `json:"imageUrl" binding:"omitempty,url"`
	Date     datatypes.Date `json:"date" gorm:"index"`
}

func NewPopularArticle() *PopularArticle {
	return &PopularArticle{Date: datatypes.Date(time.Now())}
}

func (p PopularArticle) DisplayImage() string {
	return displayImage(p.Image, p.ImageURL)
}
