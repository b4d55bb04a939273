package v1

import (
	"net/http"
	"strconv"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/middleware"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// DirectoryController handles the surplus and demand listings and the
// matches between them
type DirectoryController struct {
	listingService *services.ListingService
	matchService   *services.MatchService
}

// NewDirectoryController creates a new directory controller
func NewDirectoryController(listingService *services.ListingService, matchService *services.MatchService) *DirectoryController {
	return &DirectoryController{
		listingService: listingService,
		matchService:   matchService,
	}
}

// RegisterRoutes registers directory routes
func (d *DirectoryController) RegisterRoutes(router *gin.RouterGroup) {
	directory := router.Group("/directory")
	{
		directory.GET("", d.Index)

		directory.GET("/surplus", d.ListSurplus)
		directory.POST("/surplus", d.CreateSurplus)
		directory.GET("/surplus/:id", d.GetSurplus)
		directory.PUT("/surplus/:id", d.ReplaceSurplus)

		directory.GET("/demand", d.ListDemand)
		directory.POST("/demand", d.CreateDemand)
		directory.GET("/demand/:id", d.GetDemand)
		directory.PUT("/demand/:id", d.ReplaceDemand)

		directory.GET("/matches", d.ListMatches)
		directory.POST("/matches/suggest/:surplus_id/:demand_id", d.SuggestMatch)
	}
}

// Index returns the listing counts and the latest listings
func (d *DirectoryController) Index(c *gin.Context) {
	index, err := d.listingService.DirectoryIndex()
	if err != nil {
		respondServiceError(c, "Failed to load the directory", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, index)
}

// ListSurplus lists the caller's surplus listings matching the filters
func (d *DirectoryController) ListSurplus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var filter dto.SurplusFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return
	}

	listings, err := d.listingService.ListSurplus(userID, filter)
	if err != nil {
		respondServiceError(c, "Failed to list surplus listings", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{
		"listings": listings,
		"filters":  filter,
	})
}

// CreateSurplus stores a surplus listing owned by the caller
func (d *DirectoryController) CreateSurplus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SurplusRequest
	if !bindForm(c, &req) {
		return
	}

	listing, err := d.listingService.CreateSurplus(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, "Failed to create surplus listing", err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, listing)
}

// GetSurplus returns one of the caller's surplus listings
func (d *DirectoryController) GetSurplus(c *gin.Context) {
	userID, id, ok := d.ownedID(c)
	if !ok {
		return
	}

	listing, err := d.listingService.GetSurplus(userID, id)
	if err != nil {
		respondServiceError(c, "Failed to load surplus listing", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, listing)
}

// ReplaceSurplus overwrites one of the caller's surplus listings
func (d *DirectoryController) ReplaceSurplus(c *gin.Context) {
	userID, id, ok := d.ownedID(c)
	if !ok {
		return
	}
	var req dto.SurplusRequest
	if !bindForm(c, &req) {
		return
	}

	listing, err := d.listingService.ReplaceSurplus(userID, id, req)
	if err != nil {
		respondServiceError(c, "Failed to update surplus listing", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, listing)
}

// ListDemand lists the caller's demand listings matching the filters
func (d *DirectoryController) ListDemand(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var filter dto.DemandFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return
	}

	listings, err := d.listingService.ListDemand(userID, filter)
	if err != nil {
		respondServiceError(c, "Failed to list demand listings", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{
		"listings": listings,
		"filters":  filter,
	})
}

// CreateDemand stores a demand listing owned by the caller
func (d *DirectoryController) CreateDemand(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.DemandRequest
	if !bindForm(c, &req) {
		return
	}

	listing, err := d.listingService.CreateDemand(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, "Failed to create demand listing", err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, listing)
}

// GetDemand returns one of the caller's demand listings
func (d *DirectoryController) GetDemand(c *gin.Context) {
	userID, id, ok := d.ownedID(c)
	if !ok {
		return
	}

	listing, err := d.listingService.GetDemand(userID, id)
	if err != nil {
		respondServiceError(c, "Failed to load demand listing", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, listing)
}

// ReplaceDemand overwrites one of the caller's demand listings
func (d *DirectoryController) ReplaceDemand(c *gin.Context) {
	userID, id, ok := d.ownedID(c)
	if !ok {
		return
	}
	var req dto.DemandRequest
	if !bindForm(c, &req) {
		return
	}

	listing, err := d.listingService.ReplaceDemand(userID, id, req)
	if err != nil {
		respondServiceError(c, "Failed to update demand listing", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, listing)
}

// ListMatches lists the matches visible to the caller
func (d *DirectoryController) ListMatches(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	matches, err := d.matchService.ListMatches(userID, middleware.IsStaff(c))
	if err != nil {
		respondServiceError(c, "Failed to list matches", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"matches": matches})
}

// SuggestMatch pairs a surplus listing with a demand listing and notifies
// both parties
func (d *DirectoryController) SuggestMatch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surplusID, err1 := parseID(c.Param("surplus_id"))
	demandID, err2 := parseID(c.Param("demand_id"))
	if err1 != nil || err2 != nil {
		utils.RespondError(c, http.StatusNotFound, "Not found", nil)
		return
	}

	var req dto.SuggestMatchRequest
	if c.Request.ContentLength > 0 && !bindForm(c, &req) {
		return
	}

	match, err := d.matchService.SuggestMatch(c.Request.Context(), userID, surplusID, demandID, req.Notes)
	if err != nil {
		respondServiceError(c, "Failed to suggest match", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Match suggested",
		"data":    match,
	})
}

// ownedID reads the caller and the :id parameter. A malformed id is a
// missing listing.
func (d *DirectoryController) ownedID(c *gin.Context) (uint, uint, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Not found", nil)
		return 0, 0, false
	}
	return userID, id, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}
