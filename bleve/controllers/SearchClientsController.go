package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchClientsController(ctx *fiber.Ctx) error {
	return c.runSearch(ctx, c.repo.SearchClients)
}
