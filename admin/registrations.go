package admin

import (
	"net/http"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the console actions call into.
type Dependencies struct {
	Listings *services.ListingService
	Feeds    *services.FeedService
}

// NewDefaultSite registers every model of the application.
func NewDefaultSite(deps Dependencies) *Site {
	utils.RegisterValidation()
	site := NewSite()

	site.Register(&ModelAdmin[models.User]{
		Name:         "users",
		Verbose:      "User",
		ListDisplay:  []string{"username", "email", "role", "createdAt"},
		SearchFields: []string{"username", "email"},
		ListFilter:   []string{"role"},
		Ordering:     []string{"username"},
		NoCreate:     true,
		KeepOnUpdate: []string{"password", "created_at"},
		DeleteFunc:   repositories.NewUserRepository().Delete,
	})

	site.Register(&ModelAdmin[models.Category]{
		Name:         "categories",
		Verbose:      "Category",
		ListDisplay:  []string{"name", "slug"},
		SearchFields: []string{"name"},
		Ordering:     []string{"name"},
	})

	site.Register(&ModelAdmin[models.Article]{
		Name:         "articles",
		Verbose:      "Article",
		ListDisplay:  []string{"title", "publishedDate", "isPublished", "isFeatured"},
		SearchFields: []string{"title", "body", "excerpt", "summary"},
		ListFilter:   []string{"is_published", "is_featured"},
		Ordering:     []string{"-published_date"},
		Preload:      []string{"Author"},
		Categories:   &CategoryFilter{JoinTable: "article_categories", ForeignKey: "article_id"},
		New:          models.NewArticle,
		References: func(a *models.Article) []Reference {
			return []Reference{Ref("authorId", &models.User{}, a.AuthorID)}
		},
	})

	site.Register(&ModelAdmin[models.Resource]{
		Name:         "resources",
		Verbose:      "Resource",
		ListDisplay:  []string{"title", "resourceType", "published", "isFeatured", "createdAt"},
		SearchFields: []string{"title", "description"},
		ListFilter:   []string{"resource_type", "published", "is_featured"},
		Ordering:     []string{"-created_at"},
		Categories:   &CategoryFilter{JoinTable: "resource_categories", ForeignKey: "resource_id"},
		New:          models.NewResource,
	})

	site.Register(&ModelAdmin[models.MagazineIssue]{
		Name:         "magazine-issues",
		Verbose:      "Magazine issue",
		ListDisplay:  []string{"title", "publishedDate", "isFeatured", "isPublished"},
		SearchFields: []string{"title", "description"},
		ListFilter:   []string{"is_featured", "is_published"},
		Ordering:     []string{"-published_date"},
		Categories:   &CategoryFilter{JoinTable: "magazine_issue_categories", ForeignKey: "magazine_issue_id"},
		New:          models.NewMagazineIssue,
	})

	site.Register(&ModelAdmin[models.PopularArticle]{
		Name:         "popular-articles",
		Verbose:      "Popular article",
		ListDisplay:  []string{"title", "date"},
		SearchFields: []string{"title"},
		Ordering:     []string{"-date"},
		New:          models.NewPopularArticle,
		Actions: map[string]gin.HandlerFunc{
			"import": importFeed(deps.Feeds),
		},
	})

	site.Register(&ModelAdmin[models.Collaboration]{
		Name:         "collaborations",
		Verbose:      "Collaboration",
		ListDisplay:  []string{"name", "organisation", "growthStage", "isActive", "plantedDate"},
		SearchFields: []string{"name", "organisation", "description"},
		ListFilter:   []string{"growth_stage", "is_active"},
		Ordering:     []string{"-planted_date"},
		New:          models.NewCollaboration,
		References: func(c *models.Collaboration) []Reference {
			return []Reference{Ref("userId", &models.User{}, c.UserID)}
		},
	})

	site.Register(&ModelAdmin[models.Contribution]{
		Name:         "contributions",
		Verbose:      "Contribution",
		ListDisplay:  []string{"contributorName", "source", "amount", "date"},
		SearchFields: []string{"contributor_name", "email", "message"},
		ListFilter:   []string{"source"},
		Ordering:     []string{"-date"},
		Preload:      []string{"User"},
		References: func(c *models.Contribution) []Reference {
			return []Reference{Ref("userId", &models.User{}, c.UserID)}
		},
	})

	site.Register(&ModelAdmin[models.FoundersList]{
		Name:         "founders",
		Verbose:      "Founders list entry",
		ListDisplay:  []string{"email", "joined"},
		SearchFields: []string{"email"},
		Ordering:     []string{"-joined"},
		New:          models.NewFoundersList,
	})

	site.Register(&ModelAdmin[models.SurplusListing]{
		Name:         "surplus-listings",
		Verbose:      "Surplus listing",
		ListDisplay:  []string{"company", "materialType", "location", "monthlyVolume", "approved", "createdOn"},
		SearchFields: []string{"company", "location", "description"},
		ListFilter:   []string{"material_type", "approved", "is_food_safe", "user_id"},
		Ordering:     []string{"-created_on"},
		Preload:      []string{"User"},
		KeepOnUpdate: []string{"created_on"},
		References: func(l *models.SurplusListing) []Reference {
			return []Reference{{Field: "userId", Model: &models.User{}, ID: l.UserID}}
		},
		Actions: map[string]gin.HandlerFunc{
			"approve":   setApproval(deps.Listings.SetSurplusApproval, true),
			"unapprove": setApproval(deps.Listings.SetSurplusApproval, false),
		},
	})

	site.Register(&ModelAdmin[models.DemandListing]{
		Name:         "demand-listings",
		Verbose:      "Demand listing",
		ListDisplay:  []string{"organisation", "materialWanted", "location", "quantityNeeded", "approved", "createdOn"},
		SearchFields: []string{"organisation", "location", "intended_use"},
		ListFilter:   []string{"material_wanted", "approved", "user_id"},
		Ordering:     []string{"-created_on"},
		Preload:      []string{"User"},
		KeepOnUpdate: []string{"created_on"},
		References: func(l *models.DemandListing) []Reference {
			return []Reference{{Field: "userId", Model: &models.User{}, ID: l.UserID}}
		},
		Actions: map[string]gin.HandlerFunc{
			"approve":   setApproval(deps.Listings.SetDemandApproval, true),
			"unapprove": setApproval(deps.Listings.SetDemandApproval, false),
		},
	})

	site.Register(&ModelAdmin[models.Match]{
		Name:         "matches",
		Verbose:      "Match",
		ListDisplay:  []string{"surplus", "demand", "suggestedBy", "createdOn"},
		SearchFields: []string{"notes"},
		ListFilter:   []string{"surplus_id", "demand_id", "suggested_by_id"},
		Ordering:     []string{"-created_on"},
		Preload:      []string{"Surplus", "Demand", "SuggestedBy"},
		KeepOnUpdate: []string{"created_on"},
		References: func(m *models.Match) []Reference {
			return []Reference{
				{Field: "surplusId", Model: &models.SurplusListing{}, ID: m.SurplusID},
				{Field: "demandId", Model: &models.DemandListing{}, ID: m.DemandID},
				Ref("suggestedById", &models.User{}, m.SuggestedByID),
			}
		},
	})

	return site
}

type selectionRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

func setApproval(apply func(ids []uint, approved bool) (int64, error), approved bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req selectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidation(c, utils.FieldErrors(err))
			return
		}
		updated, err := apply(req.IDs, approved)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update listings", err)
			return
		}
		utils.RespondOK(c, http.StatusOK, gin.H{"updated": updated, "approved": approved})
	}
}

func importFeed(feeds *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.FeedImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidation(c, utils.FieldErrors(err))
			return
		}
		result, err := feeds.Import(c.Request.Context(), req.URL, req.Limit)
		if err != nil {
			utils.RespondError(c, http.StatusBadGateway, "Failed to import feed", err)
			return
		}
		utils.RespondOK(c, http.StatusOK, result)
	}
}
