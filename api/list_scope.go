package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listScope is the folder-dimension of a listing, resolved once from the
// query string instead of branching ad-hoc per filter combination.
// Precedence: search beats an explicit folder, and the root default only
// applies when neither starred nor trashed was requested (those listings
// span all folders).
type listScope int

const (
	scopeRoot listScope = iota
	scopeFolder
	scopeSearch
	scopeAll
)

type listFilter struct {
	scope    listScope
	folderID string
	search   string

	starred bool
	trashed bool

	page  int
	limit int
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

const maxListLimit = 100

func parseListFilter(c *gin.Context, folderParam string) (*listFilter, error) {
	f := &listFilter{
		folderID: c.Query(folderParam),
		search:   strings.TrimSpace(c.Query("search")),
		starred:  c.Query("starred") == "true",
		trashed:  c.Query("trashed") == "true",
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return nil, errors.New("Page is not a valid integer")
	}

	if page < 1 {
		return nil, errors.New("Page must be bigger than 0")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		return nil, errors.New("Limit is not a valid integer")
	}

	if limit <= 0 {
		return nil, errors.New("Limit must be bigger than 0")
	}

	if limit > maxListLimit {
		return nil, errors.New("Limit can't be bigger than 100")
	}

	f.page = page
	f.limit = limit

	switch {
	case f.search != "":
		f.scope = scopeSearch
	case f.folderID != "":
		f.scope = scopeFolder
	case !f.starred && !f.trashed:
		f.scope = scopeRoot
	default:
		f.scope = scopeAll
	}

	return f, nil
}

// apply compiles the filter into query conditions. folderCol is the
// parent reference column, which differs between files and folders
func (f *listFilter) apply(q *gorm.DB, ownerID, folderCol string) *gorm.DB {
	q = q.Where("owner_id = ?", ownerID)

	switch f.scope {
	case scopeSearch:
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.search)+"%")
	case scopeFolder:
		q = q.Where(folderCol+" = ?", f.folderID)
	case scopeRoot:
		q = q.Where(folderCol + " IS NULL")
	case scopeAll:
	}

	if f.starred {
		q = q.Where("is_starred = ?", true)
	}

	return q.Where("is_trashed = ?", f.trashed)
}

func (f *listFilter) offset() int {
	return (f.page - 1) * f.limit
}

func (f *listFilter) paginate(total int64, got int) pagination {
	totalPages := int((total + int64(f.limit) - 1) / int64(f.limit))

	return pagination{
		Page:       f.page,
		Limit:      f.limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    int64(f.offset()+got) < total,
	}
}
