package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/repositories"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryFilter filters a model through its many-to-many category table.
type CategoryFilter struct {
	JoinTable  string // e.g. article_categories
	ForeignKey string // e.g. article_id
}

// Reference is a foreign key of a record: the json field carrying it, the
// referenced model and the id. A zero id is not checked.
type Reference struct {
	Field string
	Model interface{}
	ID    uint
}

// Ref builds a Reference from an optional id.
func Ref(field string, model interface{}, id *uint) Reference {
	ref := Reference{Field: field, Model: model}
	if id != nil {
		ref.ID = *id
	}
	return ref
}

// ModelAdmin is the console registration of one model type. Records are
// checked against the binding rules of T before they are saved.
type ModelAdmin[T any] struct {
	Name         string
	Verbose      string
	ListDisplay  []string
	SearchFields []string
	ListFilter   []string
	Ordering     []string
	Preload      []string

	// Categories enables the "category" filter (by slug) and the
	// categoryIds field on create and update.
	Categories *CategoryFilter

	// New returns a record carrying the column defaults.
	New func() *T
	// References lists the foreign keys that must point at existing rows.
	References func(*T) []Reference
	// NoCreate hides the create endpoint.
	NoCreate bool
	// KeepOnUpdate lists columns the console never overwrites.
	KeepOnUpdate []string
	// DeleteFunc replaces the generic delete.
	DeleteFunc func(id uint) error
	// Actions are extra POST endpoints under /{name}/actions/{action}.
	Actions map[string]gin.HandlerFunc
}

func (m *ModelAdmin[T]) Meta() Meta {
	actions := make([]string, 0, len(m.Actions))
	for name := range m.Actions {
		actions = append(actions, name)
	}
	filters := append([]string(nil), m.ListFilter...)
	if m.Categories != nil {
		filters = append(filters, "category")
	}
	return Meta{
		Name:         m.Name,
		Verbose:      m.Verbose,
		ListDisplay:  m.ListDisplay,
		SearchFields: m.SearchFields,
		ListFilter:   filters,
		Ordering:     m.Ordering,
		Actions:      actions,
		CanCreate:    !m.NoCreate,
	}
}

func (m *ModelAdmin[T]) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", m.list)
	group.GET("/:id", m.get)
	group.PUT("/:id", m.update)
	group.DELETE("/:id", m.delete)
	if !m.NoCreate {
		group.POST("", m.create)
	}
	for name, handler := range m.Actions {
		group.POST("/actions/"+name, handler)
	}
}

func (m *ModelAdmin[T]) newRecord() *T {
	if m.New != nil {
		return m.New()
	}
	return new(T)
}

func (m *ModelAdmin[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range m.Preload {
		db = db.Preload(p)
	}
	if m.Categories != nil {
		db = db.Preload("Categories")
	}
	return db
}

// list serves GET /{name}?q=&page=&page_size=&<filter>=
func (m *ModelAdmin[T]) list(c *gin.Context) {
	query := database.DB.Model(new(T))

	if q := strings.TrimSpace(c.Query("q")); q != "" && len(m.SearchFields) > 0 {
		like := repositories.ContainsPattern(q)
		clauses := make([]string, 0, len(m.SearchFields))
		args := make([]interface{}, 0, len(m.SearchFields))
		for _, field := range m.SearchFields {
			clauses = append(clauses, repositories.LikeClause(field))
			args = append(args, like)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	for _, field := range m.ListFilter {
		raw, ok := c.GetQuery(field)
		if !ok || raw == "" {
			continue
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: field}, Value: filterValue(raw)})
	}

	if m.Categories != nil {
		if slug := strings.TrimSpace(c.Query("category")); slug != "" {
			inCategory := database.DB.Table(m.Categories.JoinTable).
				Select(m.Categories.JoinTable+"."+m.Categories.ForeignKey).
				Joins("JOIN categories ON categories.id = "+m.Categories.JoinTable+".category_id").
				Where("categories.slug = ?", slug)
			query = query.Where("id IN (?)", inCategory)
		}
	}

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to count "+m.Verbose, err)
		return
	}

	pageSize := queryInt(c, "page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	paginator := services.Paginator{Count: count, PerPage: pageSize}
	number := paginator.Resolve(c.DefaultQuery("page", "1"))

	for _, order := range m.Ordering {
		query = query.Order(orderClause(order))
	}
	query = query.Order("id DESC")

	items := []T{}
	if err := m.withPreloads(query).Offset(paginator.Offset(number)).Limit(pageSize).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to list "+m.Verbose, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"items":       items,
			"count":       count,
			"page":        number,
			"numPages":    paginator.NumPages(),
			"pageSize":    pageSize,
			"listDisplay": m.ListDisplay,
		},
	})
}

func (m *ModelAdmin[T]) load(c *gin.Context) (*T, uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, m.Verbose+" not found", nil)
		return nil, 0, false
	}
	record := new(T)
	if err := m.withPreloads(database.DB).First(record, id).Error; err != nil {
		if repositories.IsNotFound(err) {
			utils.RespondError(c, http.StatusNotFound, m.Verbose+" not found", nil)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, "Failed to load "+m.Verbose, err)
		}
		return nil, 0, false
	}
	return record, uint(id), true
}

func (m *ModelAdmin[T]) get(c *gin.Context) {
	record, _, ok := m.load(c)
	if !ok {
		return
	}
	utils.RespondOK(c, http.StatusOK, record)
}

func (m *ModelAdmin[T]) create(c *gin.Context) {
	record := m.newRecord()
	if !m.decode(c, record) {
		return
	}
	setID(record, 0)

	if !m.save(c, record, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(record).Error
	}) {
		return
	}
	utils.RespondOK(c, http.StatusCreated, record)
}

// update replaces the record with the request body. Fields missing from
// the body keep their stored value.
func (m *ModelAdmin[T]) update(c *gin.Context) {
	record, id, ok := m.load(c)
	if !ok {
		return
	}
	if !m.decode(c, record) {
		return
	}
	setID(record, id)

	if !m.save(c, record, func(tx *gorm.DB) error {
		omit := append([]string{clause.Associations}, m.KeepOnUpdate...)
		return tx.Omit(omit...).Save(record).Error
	}) {
		return
	}
	utils.RespondOK(c, http.StatusOK, record)
}

func (m *ModelAdmin[T]) decode(c *gin.Context, record *T) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := json.Unmarshal(body, record); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return false
	}
	if err := binding.Validator.ValidateStruct(record); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return false
	}
	return true
}

func (m *ModelAdmin[T]) save(c *gin.Context, record *T, write func(tx *gorm.DB) error) bool {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := m.checkReferences(tx, record); err != nil {
			return err
		}
		if err := write(tx); err != nil {
			return err
		}
		if m.Categories == nil {
			return nil
		}
		ids := categoryIDs(record)
		if ids == nil {
			return nil
		}
		categories := []categoryRef{}
		if len(ids) > 0 {
			if err := tx.Table("categories").Where("id IN ?", ids).Find(&categories).Error; err != nil {
				return err
			}
			if len(categories) != len(uniqueIDs(ids)) {
				return &services.ValidationError{Fields: map[string]string{"categoryIds": "Select a valid choice."}}
			}
		}
		return replaceCategories(tx, m.Categories, recordID(record), categories)
	})

	var verr *services.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		utils.RespondValidation(c, verr.Fields)
		return false
	case repositories.IsDuplicateKey(err):
		utils.RespondError(c, http.StatusConflict, m.Verbose+" already exists", err)
		return false
	case repositories.IsForeignKeyViolation(err):
		utils.RespondValidation(c, map[string]string{"_": "A referenced record does not exist."})
		return false
	default:
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save "+m.Verbose, err)
		return false
	}

	// Reload so the response carries the stored relations
	if reloaded := new(T); m.withPreloads(database.DB).First(reloaded, recordID(record)).Error == nil {
		*record = *reloaded
	}
	return true
}

func (m *ModelAdmin[T]) checkReferences(tx *gorm.DB, record *T) error {
	if m.References == nil {
		return nil
	}
	fields := map[string]string{}
	for _, ref := range m.References(record) {
		if ref.ID == 0 {
			continue
		}
		var count int64
		if err := tx.Model(ref.Model).Where("id = ?", ref.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			fields[ref.Field] = "Select a valid choice. That choice is not one of the available choices."
		}
	}
	if len(fields) > 0 {
		return &services.ValidationError{Fields: fields}
	}
	return nil
}

func (m *ModelAdmin[T]) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, m.Verbose+" not found", nil)
		return
	}

	if m.DeleteFunc != nil {
		err = m.DeleteFunc(uint(id))
	} else {
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if m.Categories != nil {
				if err := clearCategories(tx, m.Categories, uint(id)); err != nil {
					return err
				}
			}
			result := tx.Delete(new(T), id)
			if result.Error == nil && result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return result.Error
		})
	}

	if err != nil {
		if repositories.IsNotFound(err) {
			utils.RespondError(c, http.StatusNotFound, m.Verbose+" not found", nil)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete "+m.Verbose, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("%s %d deleted", m.Verbose, id),
	})
}

// categoryRef is the part of a category needed to link it
type categoryRef struct {
	ID uint
}

func clearCategories(tx *gorm.DB, cf *CategoryFilter, id uint) error {
	return tx.Exec("DELETE FROM "+cf.JoinTable+" WHERE "+cf.ForeignKey+" = ?", id).Error
}

func replaceCategories(tx *gorm.DB, cf *CategoryFilter, id uint, categories []categoryRef) error {
	if err := clearCategories(tx, cf, id); err != nil {
		return err
	}
	for _, cat := range categories {
		row := map[string]interface{}{cf.ForeignKey: id, "category_id": cat.ID}
		if err := tx.Table(cf.JoinTable).Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// filterValue types boolean and integer query values so they compare
// equal on every database
func filterValue(raw string) interface{} {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// orderClause turns "-field" into "field DESC"
func orderClause(order string) string {
	if strings.HasPrefix(order, "-") {
		return strings.TrimPrefix(order, "-") + " DESC"
	}
	return order
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Records are addressed through their ID and CategoryIDs fields, which
// every registered model declares.

func recordID(record interface{}) uint {
	return uint(reflect.ValueOf(record).Elem().FieldByName("ID").Uint())
}

func setID(record interface{}, id uint) {
	reflect.ValueOf(record).Elem().FieldByName("ID").SetUint(uint64(id))
}

func categoryIDs(record interface{}) []uint {
	field := reflect.ValueOf(record).Elem().FieldByName("CategoryIDs")
	if !field.IsValid() || field.IsNil() {
		return nil
	}
	return field.Interface().([]uint)
}
