package pagination

import (
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"
)

type PaginationParams struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Filters  map[string]string `json:"filters"`
}

type PaginationMeta struct {
	CurrentPage int     `json:"current_page"`
	PageSize    int     `json:"page_size"`
	TotalPages  int     `json:"total_pages"`
	TotalItems  int64   `json:"total_items"`
	NextPage    *string `json:"next_page"`
	PrevPage    *string `json:"prev_page"`
}

type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

func ParsePaginationParams(c *fiber.Ctx) PaginationParams {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	filters := make(map[string]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if k != "page" && k != "page_size" {
			filters[k] = string(value)
		}
	})

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Filters:  filters,
	}
}

func ValidatePaginationParams(params PaginationParams) error {
	if params.Page < 1 {
		return fmt.Errorf("page must be greater than 0")
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100")
	}
	return nil
}

func buildPaginationURL(c *fiber.Ctx, page int, params PaginationParams) string {
	url := fmt.Sprintf("%s?page=%d&page_size=%d", c.Path(), page, params.PageSize)
	for key, value := range params.Filters {
		url += fmt.Sprintf("&%s=%s", key, value)
	}
	return url
}

func BuildPaginationMeta(c *fiber.Ctx, params PaginationParams, totalItems int64) PaginationMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(params.PageSize)))

	meta := PaginationMeta{
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}

	if params.Page < totalPages {
		next := buildPaginationURL(c, params.Page+1, params)
		meta.NextPage = &next
	}
	if params.Page > 1 {
		prev := buildPaginationURL(c, params.Page-1, params)
		meta.PrevPage = &prev
	}

	return meta
}
