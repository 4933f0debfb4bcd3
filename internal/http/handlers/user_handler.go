package handlers

import (
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	us, err := h.Users.List()
	if err != nil {
		return fail(c, "users.list", err)
	}
	return c.JSON(us)
}

// GET /users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	u, err := h.Users.Get(id)
	if err != nil {
		return fail(c, "users.get", err)
	}
	return c.JSON(u)
}

// POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.Users.Create(in)
	if err != nil {
		return fail(c, "users.create", err)
	}
	applog.Audit(c, "users.create", map[string]any{"id": u.ID, "email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// PATCH /users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.Users.Update(id, in)
	if err != nil {
		return fail(c, "users.update", err)
	}
	applog.Audit(c, "users.update", map[string]any{"id": id})
	return c.JSON(u)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badID(c)
	}
	if uid, _ := c.Locals("uid").(int64); uid == id {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot delete your own account"})
	}
	if err := h.Users.Delete(id); err != nil {
		return fail(c, "users.delete", err)
	}
	applog.Audit(c, "users.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
