package models

import (
	"fmt"
	"time"
)

// MaterialType is the kind of material offered or wanted in a listing.
type MaterialType string

const (
	MaterialWood      MaterialType = "wood"
	MaterialMetal     MaterialType = "metal"
	MaterialTextiles  MaterialType = "textiles"
	MaterialPlastic   MaterialType = "plastic"
	MaterialFoam      MaterialType = "foam"
	MaterialCardboard MaterialType = "cardboard"
	MaterialFood      MaterialType = "food"
	MaterialOther     MaterialType = "other"
)

// MaterialChoices lists material types with their display labels, in form order.
var MaterialChoices = []Choice{
	{Value: string(MaterialWood), Label: "Wood"},
	{Value: string(MaterialMetal), Label: "Metal"},
	{Value: string(MaterialTextiles), Label: "Textiles"},
	{Value: string(MaterialPlastic), Label: "Plastic"},
	{Value: string(MaterialFoam), Label: "Foam"},
	{Value: string(MaterialCardboard), Label: "Cardboard"},
	{Value: string(MaterialFood), Label: "Food"},
	{Value: string(MaterialOther), Label: "Other"},
}

// Valid reports whether m is one of the known material types.
func (m MaterialType) Valid() bool {
	return validChoice(MaterialChoices, string(m))
}

// SurplusListing is material a user has on offer.
type SurplusListing struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UserID        uint         `json:"userId" gorm:"not null;index" binding:"required"`
	Company       string       `json:"company" gorm:"size:150;not null" binding:"required,max=150"`
	Location      string       `json:"location" gorm:"size:150;not null" binding:"required,max=150"`
	MaterialType  MaterialType `json:"materialType" gorm:"size:50;not null;index" binding:"required,oneof=wood metal textiles plastic foam cardboard food other"`
	Description   string       `json:"description" gorm:"type:text"`
	MonthlyVolume float64      `json:"monthlyVolume" gorm:"type:decimal(10,2);not null" binding:"gt=-100000000,lt=100000000,maxdecimals=2"`
	IsFoodSafe    bool         `json:"isFoodSafe" gorm:"default:false"`
	ContactEmail  string       `json:"contactEmail" gorm:"size:254;not null" binding:"required,email,max=254"`
	Approved      bool         `json:"approved" gorm:"default:false"`
	CreatedOn     time.Time    `json:"createdOn" gorm:"autoCreateTime;index"`

	// Relations
	User    *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" binding:"-"`
	Matches []Match `json:"matches,omitempty" gorm:"foreignKey:SurplusID;constraint:OnDelete:CASCADE" binding:"-"`
}

func (s SurplusListing) String() string {
	return fmt.Sprintf("%s – %s", s.Company, s.MaterialType)
}

// DemandListing is material a user is looking for.
type DemandListing struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	UserID         uint         `json:"userId" gorm:"not null;index" binding:"required"`
	Organisation   *string      `json:"organisation" gorm:"size:150" binding:"omitempty,max=150"`
	Location       string       `json:"location" gorm:"size:150;not null" binding:"required,max=150"`
	MaterialWanted MaterialType `json:"materialWanted" gorm:"size:50;not null;index" binding:"required,oneof=wood metal textiles plastic foam cardboard food other"`
	QuantityNeeded float64      `json:"quantityNeeded" gorm:"type:decimal(10,2);not null" binding:"gt=-100000000,lt=100000000,maxdecimals=2"`
	IntendedUse    *string      `json:"intendedUse" gorm:"type:text"`
	Approved       bool         `json:"approved" gorm:"default:false"`
	CreatedOn      time.Time    `json:"createdOn" gorm:"autoCreateTime;index"`

	// Relations
	User    *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" binding:"-"`
	Matches []Match `json:"matches,omitempty" gorm:"foreignKey:DemandID;constraint:OnDelete:CASCADE" binding:"-"`
}

// OrganisationName returns the organisation or the given fallback when unset.
func (d DemandListing) OrganisationName(fallback string) string {
	if d.Organisation == nil || *d.Organisation == "" {
		return fallback
	}
	return *d.Organisation
}

func (d DemandListing) String() string {
	return fmt.Sprintf("%s needs %s", d.OrganisationName("Anonymous"), d.MaterialWanted)
}
