// Package admin is the staff console: declarative model registrations
// served through generic list, search, filter and CRUD endpoints.
package admin

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Meta describes a registration to clients of the console.
type Meta struct {
	Name         string   `json:"name"`
	Verbose      string   `json:"verbose"`
	ListDisplay  []string `json:"listDisplay"`
	SearchFields []string `json:"searchFields"`
	ListFilter   []string `json:"listFilter"`
	Ordering     []string `json:"ordering"`
	Actions      []string `json:"actions"`
	CanCreate    bool     `json:"canCreate"`
}

// Registration is a model exposed in the console.
type Registration interface {
	Meta() Meta
	RegisterRoutes(group *gin.RouterGroup)
}

// Site holds the registrations and serves them under one router group.
type Site struct {
	registrations map[string]Registration
}

// NewSite creates an empty console
func NewSite() *Site {
	return &Site{registrations: make(map[string]Registration)}
}

// Register adds a registration. Registering the same name twice panics.
func (s *Site) Register(reg Registration) {
	name := reg.Meta().Name
	if _, exists := s.registrations[name]; exists {
		panic("admin: " + name + " registered twice")
	}
	s.registrations[name] = reg
}

// Metas lists the registrations sorted by name
func (s *Site) Metas() []Meta {
	metas := make([]Meta, 0, len(s.registrations))
	for _, reg := range s.registrations {
		metas = append(metas, reg.Meta())
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas
}

// RegisterRoutes mounts the index and every registration on router. The
// caller is responsible for restricting the group to staff.
func (s *Site) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", s.index)
	for name, reg := range s.registrations {
		reg.RegisterRoutes(router.Group("/" + name))
	}
}

func (s *Site) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   s.Metas(),
	})
}
