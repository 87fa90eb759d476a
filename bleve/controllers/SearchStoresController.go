package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchStoresController(ctx *fiber.Ctx) error {
	return c.runSearch(ctx, c.repo.SearchStores)
}
