package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchEnquiriesController(ctx *fiber.Ctx) error {
	return c.runSearch(ctx, c.repo.SearchEnquiries)
}
