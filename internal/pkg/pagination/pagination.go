package pagination

import (
	"github.com/gofiber/fiber/v2"
)

// Params holds pagination parameters
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Meta holds pagination metadata for responses
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Response is a paginated list response
type Response struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// GetParams extracts pagination params from the query string
func GetParams(c *fiber.Ctx) Params {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	return Params{Page: page, PerPage: perPage}
}

// Offset returns the SQL offset for the current page
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// GetMeta builds pagination metadata from a total count
func GetMeta(params Params, total int64) Meta {
	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// NewResponse builds a paginated response envelope
func NewResponse(data interface{}, params Params, total int64) Response {
	return Response{
		Data: data,
		Meta: GetMeta(params, total),
	}
}
