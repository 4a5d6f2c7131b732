package handlers

import (
	"errors"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	_, data := listPage[domain.User](c, "users.list.fail", h.Users.List, h.Users.Reload)
	return render(c, "users", data)
}

func (h *UserHandler) form(c *fiber.Ctx, status int, id string, f services.UserForm, err error) error {
	// passwords are never echoed back into the form
	f.Password, f.Confirm = "", ""
	data := fiber.Map{"Form": f, "ID": id, "Editing": id != "", "Roles": domain.UserRoles}
	if err != nil {
		data["Err"] = userMessage(err)
	}
	return renderStatus(c, status, "user_form", data)
}

func userForm(c *fiber.Ctx) services.UserForm {
	return services.UserForm{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Role:     c.FormValue("role"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirm_password"),
	}
}

// GET /users/new
func (h *UserHandler) New(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, "", services.UserForm{Role: "Staff"}, nil)
}

// GET /users/:id/edit
func (h *UserHandler) Edit(c *fiber.Ctx) error {
	u, err := h.Users.Get(c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		applog.Error(c, "users.edit.load.fail", err, nil)
		flashError(c, userMessage(err))
		return c.Redirect("/users")
	}
	return h.form(c, fiber.StatusOK, u.ID, services.UserFormFrom(u), nil)
}

// POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	f := userForm(c)
	u, err := h.Users.Create(c.UserContext(), f)
	if err != nil {
		applog.Error(c, "users.create.fail", err, map[string]any{"email": f.Email})
		return h.form(c, formStatus(err), "", f, err)
	}
	applog.Audit(c, "users.create", map[string]any{"id": u.ID, "role": u.Role})
	flashSuccess(c, "User created successfully")
	return c.Redirect("/users")
}

// POST /users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	f := userForm(c)
	if err := h.Users.Update(c.UserContext(), id, f); err != nil {
		applog.Error(c, "users.update.fail", err, map[string]any{"id": id})
		return h.form(c, formStatus(err), id, f, err)
	}
	applog.Audit(c, "users.update", map[string]any{"id": id, "role": f.Role, "password_reset": f.Password != ""})
	flashSuccess(c, "User updated successfully")
	return c.Redirect("/users")
}

// GET /users/:id/delete
func (h *UserHandler) ConfirmDelete(c *fiber.Ctx) error {
	u, err := h.Users.Get(c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		applog.Error(c, "users.delete.load.fail", err, nil)
		flashError(c, userMessage(err))
		return c.Redirect("/users")
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":   "user",
		"Name":   u.Name,
		"Action": "/users/" + u.ID + "/delete",
		"Back":   "/users",
	})
}

// POST /users/:id/delete
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		applog.Error(c, "users.delete.fail", err, map[string]any{"id": id})
		flashError(c, userMessage(err))
		return c.Redirect("/users")
	}
	applog.Audit(c, "users.delete", map[string]any{"id": id})
	flashSuccess(c, "User deleted successfully")
	return c.Redirect("/users")
}
