package handlers

import (
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WorkHandler struct {
	Works *services.WorkService
}

// GET /works
func (h *WorkHandler) List(c *fiber.Ctx) error {
	ws, err := h.Works.List()
	if err != nil {
		return fail(c, "works.list", err)
	}
	return c.JSON(ws)
}

// GET /works/:id
func (h *WorkHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	w, err := h.Works.Get(id)
	if err != nil {
		return fail(c, "works.get", err)
	}
	return c.JSON(w)
}

// POST /works
func (h *WorkHandler) Create(c *fiber.Ctx) error {
	var in services.WorkInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	w, err := h.Works.Create(in)
	if err != nil {
		return fail(c, "works.create", err)
	}
	applog.Audit(c, "works.create", map[string]any{"id": w.ID})
	return c.Status(fiber.StatusCreated).JSON(w)
}

// PATCH /works/:id
func (h *WorkHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	var in services.WorkInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	w, err := h.Works.Update(id, in)
	if err != nil {
		return fail(c, "works.update", err)
	}
	applog.Audit(c, "works.update", map[string]any{"id": id})
	return c.JSON(w)
}

// DELETE /works/:id
func (h *WorkHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	if err := h.Works.Delete(id); err != nil {
		return fail(c, "works.delete", err)
	}
	applog.Audit(c, "works.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
