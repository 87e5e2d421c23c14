package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-based page and a page size.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Metadata is returned alongside list responses.
type Metadata struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// FromQuery reads ?page= and ?limit=, falling back to defaults on missing or
// invalid values and clamping limit to MaxLimit.
func FromQuery(c *fiber.Ctx) Params {
	return New(c.Query("page"), c.Query("limit"))
}

func New(page, limit string) Params {
	p := Params{Page: 1, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope applies offset and limit to a query.
func (p Params) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}

func (p Params) Metadata(total int64) Metadata {
	return Metadata{Page: p.Page, Limit: p.Limit, Total: total}
}
