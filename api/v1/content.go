package v1

import (
	"net/http"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// ContentController serves the news, insights, knowledge and magazine pages
type ContentController struct {
	contentService *services.ContentService
}

// NewContentController creates a new content controller
func NewContentController(contentService *services.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// RegisterRoutes registers content routes
func (cc *ContentController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/news", cc.News)
	router.GET("/news/:slug", cc.ArticleDetail)
	router.GET("/insights", cc.Insights)
	router.GET("/knowledge", cc.Knowledge)
	router.GET("/magazine", cc.Magazine)
}

// News returns one page of published articles
func (cc *ContentController) News(c *gin.Context) {
	page, err := cc.contentService.News(c.Query("page"))
	if err != nil {
		respondServiceError(c, "Failed to load news", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, page)
}

// ArticleDetail returns a published article by slug
func (cc *ContentController) ArticleDetail(c *gin.Context) {
	detail, err := cc.contentService.ArticleDetail(c.Param("slug"))
	if err != nil {
		respondServiceError(c, "Failed to load article", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, detail)
}

// Insights returns the published articles grouped by category
func (cc *ContentController) Insights(c *gin.Context) {
	page, err := cc.contentService.Insights()
	if err != nil {
		respondServiceError(c, "Failed to load insights", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, page)
}

// Knowledge returns the knowledge center
func (cc *ContentController) Knowledge(c *gin.Context) {
	page, err := cc.contentService.Knowledge()
	if err != nil {
		respondServiceError(c, "Failed to load the knowledge center", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, page)
}

// Magazine returns the published magazine issues matching the filters
func (cc *ContentController) Magazine(c *gin.Context) {
	var filter dto.MagazineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return
	}

	page, err := cc.contentService.Magazine(filter)
	if err != nil {
		respondServiceError(c, "Failed to load the magazine", err)
		return
	}
	utils.RespondOK(c, http.StatusOK, page)
}
