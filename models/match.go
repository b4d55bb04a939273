package models

import (
	"fmt"
	"time"
)

// Match pairs one surplus listing with one demand listing.
// A given pair can only be matched once.
type Match struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SurplusID     uint      `json:"surplusId" gorm:"not null;uniqueIndex:idx_matches_pair" binding:"required"`
	DemandID      uint      `json:"demandId" gorm:"not null;uniqueIndex:idx_matches_pair" binding:"required"`
	SuggestedByID *uint     `json:"suggestedById" gorm:"index"`
	Notes         *string   `json:"notes" gorm:"type:text"`
	CreatedOn     time.Time `json:"createdOn" gorm:"autoCreateTime;index"`

	// Relations
	Surplus     *SurplusListing `json:"surplus,omitempty" gorm:"foreignKey:SurplusID;constraint:OnDelete:CASCADE" binding:"-"`
	Demand      *DemandListing  `json:"demand,omitempty" gorm:"foreignKey:DemandID;constraint:OnDelete:CASCADE" binding:"-"`
	SuggestedBy *User           `json:"suggestedBy,omitempty" gorm:"foreignKey:SuggestedByID;constraint:OnDelete:SET NULL" binding:"-"`
}

func (m Match) String() string {
	company, requester := "?", "Requester"
	if m.Surplus != nil {
		company = m.Surplus.Company
	}
	if m.Demand != nil {
		requester = m.Demand.OrganisationName("Requester")
	}
	return fmt.Sprintf("%s → %s", company, requester)
}
