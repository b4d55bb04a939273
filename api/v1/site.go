package v1

import (
	"net/http"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// SiteController serves the home page, the static pages, the community
// pages and the contact form
type SiteController struct {
	siteService    *services.SiteService
	contentService *services.ContentService
}

// NewSiteController creates a new site controller
func NewSiteController(siteService *services.SiteService, contentService *services.ContentService) *SiteController {
	return &SiteController{
		siteService:    siteService,
		contentService: contentService,
	}
}

// RegisterRoutes registers site routes
func (s *SiteController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", s.Home)
	router.POST("/", s.JoinFounders)
	router.GET("/about", staticPage("about"))
	router.GET("/loops", staticPage("loops"))
	router.GET("/categories", s.Categories)
	router.GET("/tiers", s.Tiers)
	router.POST("/contact", s.Contact)
	router.GET("/impact-tracker", s.ImpactTracker)
	router.GET("/support", s.Support)
}

// Home returns the landing page
func (s *SiteController) Home(c *gin.Context) {
	page, err := s.contentService.Home()
	if err != nil {
		respondServiceError(c, "Failed to load home page", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, page)
}

// JoinFounders adds the posted email to the founders list
func (s *SiteController) JoinFounders(c *gin.Context) {
	var req dto.FounderSignupRequest
	if !bindForm(c, &req) {
		return
	}

	result, err := s.siteService.JoinFounders(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, "Failed to join the founders list", err)
		return
	}

	message := "You're already on the founders list."
	status := http.StatusOK
	if result.Created {
		message = "Thanks for joining the founders list!"
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    result,
	})
}

func staticPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.RespondOK(c, http.StatusOK, gin.H{"page": name})
	}
}

// Categories lists the material categories of the directory
func (s *SiteController) Categories(c *gin.Context) {
	utils.RespondOK(c, http.StatusOK, gin.H{
		"page":      "categories",
		"materials": models.MaterialChoices,
	})
}

// Tiers lists the membership tiers
func (s *SiteController) Tiers(c *gin.Context) {
	utils.RespondOK(c, http.StatusOK, gin.H{"tiers": s.siteService.Tiers()})
}

// Contact sends the contact form to the site's inbox
func (s *SiteController) Contact(c *gin.Context) {
	var req dto.ContactRequest
	if !bindForm(c, &req) {
		return
	}

	if err := s.siteService.Contact(c.Request.Context(), req); err != nil {
		respondServiceError(c, "Your message could not be sent. Please try again later.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Thank you for contacting us! We'll get back to you soon.",
	})
}

// ImpactTracker lists the collaborations
func (s *SiteController) ImpactTracker(c *gin.Context) {
	collaborations, err := s.siteService.Collaborations()
	if err != nil {
		respondServiceError(c, "Failed to load collaborations", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"collaborations": collaborations})
}

// Support lists the contributions
func (s *SiteController) Support(c *gin.Context) {
	contributions, err := s.siteService.Contributions()
	if err != nil {
		respondServiceError(c, "Failed to load contributions", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"contributions": contributions})
}
