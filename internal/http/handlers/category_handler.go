package handlers

import (
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(cats)
}

// GET /categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return fail(c, "categories.get", err)
	}
	return c.JSON(cat)
}

// POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return fail(c, "categories.create", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"id": cat.ID, "slug": cat.Slug})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PATCH /categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.Catalog.UpdateCategory(id, in)
	if err != nil {
		return fail(c, "categories.update", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"id": id})
	return c.JSON(cat)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, "categories.delete", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
