package controllers

import (
	bleve_models "signops-backend/bleve/models"
	"signops-backend/bleve/repositories"

	"github.com/blevesearch/bleve/v2"
	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	repo *repositories.BleveRepository
}

func NewSearchController(repo *repositories.BleveRepository) *SearchController {
	return &SearchController{repo: repo}
}

// runSearch handles the shared query-param parsing and hit flattening.
func (c *SearchController) runSearch(ctx *fiber.Ctx, search func(string) (*bleve.SearchResult, error)) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	results, err := search(query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	response := bleve_models.SearchResponse{Hits: make([]bleve_models.SearchHit, 0, len(results.Hits))}
	for _, hit := range results.Hits {
		response.Hits = append(response.Hits, bleve_models.SearchHit{
			ID:     hit.ID,
			Fields: hit.Fields,
		})
	}

	return ctx.JSON(fiber.Map{
		"results": response.Hits,
		"total":   results.Total,
	})
}
