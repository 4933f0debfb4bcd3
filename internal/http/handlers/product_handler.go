package handlers

import (
	"atelier/internal/domain"
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products?category=:id
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var (
		ps  []domain.Product
		err error
	)
	if q := c.Query("category"); q != "" {
		catID, ok := validate.ID(q)
		if !ok {
			return badID(c)
		}
		ps, err = h.Catalog.ListProductsByCategory(catID)
	} else {
		ps, err = h.Catalog.ListProducts()
	}
	if err != nil {
		return fail(c, "products.list", err)
	}
	return c.JSON(ps)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return fail(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"id": id})
	return c.JSON(p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
