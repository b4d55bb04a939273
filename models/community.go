package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// GrowthStage tracks how far a collaboration has progressed.
type GrowthStage int

const (
	StageSeed GrowthStage = iota + 1
	StageSprout
	StageGrowth
	StageBloom
	StageHarvest
)

var growthStageLabels = map[GrowthStage]string{
	StageSeed:    "Seed",
	StageSprout:  "Sprout",
	StageGrowth:  "Growth",
	StageBloom:   "Bloom",
	StageHarvest: "Harvest",
}

func (g GrowthStage) String() string {
	if label, ok := growthStageLabels[g]; ok {
		return label
	}
	return fmt.Sprintf("Stage %d", int(g))
}

// Collaboration is a community project shown on the impact tracker.
type Collaboration struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"size:200;not null" binding:"required,max=200"`
	Description  string      `json:"description" gorm:"type:text;not null" binding:"required"`
	Organisation *string     `json:"organisation" gorm:"size:200" binding:"omitempty,max=200"`
	ContactEmail *string     `json:"contactEmail" gorm:"size:254" binding:"omitempty,email,max=254"`
	PlantedDate  time.Time   `json:"plantedDate" gorm:"autoCreateTime;index"`
	GrowthStage  GrowthStage `json:"growthStage" gorm:"not null" binding:"oneof=1 2 3 4 5"`
	UserID       *uint       `json:"userId" gorm:"index"`
	IsActive     bool        `json:"isActive"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" binding:"-"`
}

func NewCollaboration() *Collaboration {
	return &Collaboration{GrowthStage: StageSeed, IsActive: true}
}

// ContributionSource says where a contribution came from.
type ContributionSource string

const (
	SourceDonation    ContributionSource = "donation"
	SourceSponsorship ContributionSource = "sponsorship"
	SourceGrant       ContributionSource = "grant"
	SourceMaterial    ContributionSource = "material"
	SourceOther       ContributionSource = "other"
)

var ContributionSourceChoices = []Choice{
	{Value: string(SourceDonation), Label: "Donation"},
	{Value: string(SourceSponsorship), Label: "Sponsorship"},
	{Value: string(SourceGrant), Label: "Grant"},
	{Value: string(SourceMaterial), Label: "Material Support"},
	{Value: string(SourceOther), Label: "Other"},
}

// Contribution records a donation or other support.
type Contribution struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	UserID          *uint              `json:"userId" gorm:"index"`
	ContributorName *string            `json:"contributorName" gorm:"size:200" binding:"omitempty,max=200"`
	Email           *string            `json:"email" gorm:"size:254" binding:"omitempty,email,max=254"`
	Amount          *float64           `json:"amount" gorm:"type:decimal(10,2)" binding:"omitempty,gt=-100000000,lt=100000000,maxdecimals=2"`
	Source          ContributionSource `json:"source" gorm:"size:50;not null" binding:"required,oneof=donation sponsorship grant material other"`
	Message         *string            `json:"message" gorm:"type:text"`
	Date            time.Time          `json:"date" gorm:"autoCreateTime;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" binding:"-"`
}

func (c Contribution) String() string {
	name := "Anonymous"
	switch {
	case c.ContributorName != nil && *c.ContributorName != "":
		name = *c.ContributorName
	case c.User != nil:
		name = c.User.Username
	}
	return fmt.Sprintf("%s – %s", name, c.Source)
}

// FoundersList is a signup for the founders mailing list.
type FoundersList struct {
	ID     uint           `json:"id" gorm:"primaryKey"`
	Email  string         `json:"email" gorm:"size:254;uniqueIndex;not null" binding:"required,email,max=254"`
	Joined datatypes.Date `json:"joined" gorm:"index"`
}

// TableName sets the table name for FoundersList model
func (FoundersList) TableName() string {
	return "founders_list"
}

func NewFoundersList() *FoundersList {
	return &FoundersList{Joined: datatypes.Date(time.Now())}
}
