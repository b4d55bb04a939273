package dto

import (
	"strings"

	"github.com/callsoso/callsoso/models"
)

// SurplusRequest is the surplus listing form. The owner and the approval
// flag are never taken from the request.
type SurplusRequest struct {
	Company       string   `json:"company" form:"company" binding:"required,max=150"`
	Location      string   `json:"location" form:"location" binding:"required,max=150"`
	MaterialType  string   `json:"materialType" form:"material_type" binding:"required,oneof=wood metal textiles plastic foam cardboard food other"`
	Description   string   `json:"description" form:"description"`
	MonthlyVolume *float64 `json:"monthlyVolume" form:"monthly_volume" binding:"required,gt=-100000000,lt=100000000,maxdecimals=2"`
	IsFoodSafe    bool     `json:"isFoodSafe" form:"is_food_safe"`
	ContactEmail  string   `json:"contactEmail" form:"contact_email" binding:"required,email,max=254"`
}

// Apply copies the form onto listing, leaving identity and ownership alone.
func (r SurplusRequest) Apply(listing *models.SurplusListing) {
	listing.Company = strings.TrimSpace(r.Company)
	listing.Location = strings.TrimSpace(r.Location)
	listing.MaterialType = models.MaterialType(r.MaterialType)
	listing.Description = r.Description
	listing.MonthlyVolume = *r.MonthlyVolume
	listing.IsFoodSafe = r.IsFoodSafe
	listing.ContactEmail = strings.TrimSpace(r.ContactEmail)
}

// DemandRequest is the demand listing form.
type DemandRequest struct {
	Organisation   *string  `json:"organisation" form:"organisation" binding:"omitempty,max=150"`
	Location       string   `json:"location" form:"location" binding:"required,max=150"`
	MaterialWanted string   `json:"materialWanted" form:"material_wanted" binding:"required,oneof=wood metal textiles plastic foam cardboard food other"`
	QuantityNeeded *float64 `json:"quantityNeeded" form:"quantity_needed" binding:"required,gt=-100000000,lt=100000000,maxdecimals=2"`
	IntendedUse    *string  `json:"intendedUse" form:"intended_use"`
}

func (r DemandRequest) Apply(listing *models.DemandListing) {
	listing.Organisation = blankToNil(r.Organisation)
	listing.Location = strings.TrimSpace(r.Location)
	listing.MaterialWanted = models.MaterialType(r.MaterialWanted)
	listing.QuantityNeeded = *r.QuantityNeeded
	listing.IntendedUse = blankToNil(r.IntendedUse)
}

// SurplusFilter holds the search parameters of the surplus list page.
type SurplusFilter struct {
	Query        string `json:"q" form:"q"`
	MaterialType string `json:"material_type" form:"material_type"`
	Location     string `json:"location" form:"location"`
}

// DemandFilter holds the search parameters of the demand list page.
type DemandFilter struct {
	Query          string `json:"q" form:"q"`
	MaterialWanted string `json:"material_wanted" form:"material_wanted"`
	Location       string `json:"location" form:"location"`
}

// SuggestMatchRequest carries the optional staff notes for a new match.
type SuggestMatchRequest struct {
	Notes *string `json:"notes" form:"notes"`
}

// DirectoryIndex is the directory landing page.
type DirectoryIndex struct {
	SurplusCount    int64                   `json:"surplusCount"`
	DemandCount     int64                   `json:"demandCount"`
	LatestSurpluses []models.SurplusListing `json:"latestSurpluses"`
	LatestDemands   []models.DemandListing  `json:"latestDemands"`
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
