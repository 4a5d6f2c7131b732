package handlers

import (
	"errors"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	_, data := listPage[domain.Category](c, "categories.list.fail", h.Catalog.Categories, h.Catalog.ReloadCategories)
	return render(c, "categories", data)
}

func (h *CategoryHandler) form(c *fiber.Ctx, status int, id string, f services.CategoryForm, err error) error {
	data := fiber.Map{"Form": f, "ID": id, "Editing": id != ""}
	if err != nil {
		data["Err"] = userMessage(err)
	}
	return renderStatus(c, status, "category_form", data)
}

func categoryForm(c *fiber.Ctx) (services.CategoryForm, error) {
	f := services.CategoryForm{Name: c.FormValue("name"), Description: c.FormValue("description")}
	files, err := uploads(c, "image")
	if len(files) > 0 {
		f.Image = &files[0]
	}
	return f, err
}

// GET /categories/new
func (h *CategoryHandler) New(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, "", services.CategoryForm{}, nil)
}

// GET /categories/:id/edit
func (h *CategoryHandler) Edit(c *fiber.Ctx) error {
	cat, err := h.Catalog.Category(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Category not found")
	}
	if err != nil {
		applog.Error(c, "categories.edit.load.fail", err, map[string]any{"id": c.Params("id")})
		flashError(c, userMessage(err))
		return c.Redirect("/categories")
	}
	return h.form(c, fiber.StatusOK, cat.ID, services.CategoryFormFrom(cat), nil)
}

// POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	f, err := categoryForm(c)
	if err == nil {
		err = h.Catalog.CreateCategory(c.UserContext(), f)
	}
	if err != nil {
		applog.Error(c, "categories.create.fail", err, map[string]any{"name": f.Name})
		return h.form(c, formStatus(err), "", f, err)
	}
	applog.Audit(c, "categories.create", map[string]any{"name": f.Name})
	flashSuccess(c, "Category created successfully")
	return c.Redirect("/categories")
}

// POST /categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := categoryForm(c)
	if err == nil {
		err = h.Catalog.UpdateCategory(c.UserContext(), id, f)
	}
	if err != nil {
		applog.Error(c, "categories.update.fail", err, map[string]any{"id": id})
		return h.form(c, formStatus(err), id, f, err)
	}
	applog.Audit(c, "categories.update", map[string]any{"id": id})
	flashSuccess(c, "Category updated successfully")
	return c.Redirect("/categories")
}

// GET /categories/:id/delete
func (h *CategoryHandler) ConfirmDelete(c *fiber.Ctx) error {
	cat, err := h.Catalog.Category(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Category not found")
	}
	if err != nil {
		applog.Error(c, "categories.delete.load.fail", err, map[string]any{"id": c.Params("id")})
		flashError(c, userMessage(err))
		return c.Redirect("/categories")
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":   "category",
		"Name":   cat.Name,
		"Action": "/categories/" + cat.ID + "/delete",
		"Back":   "/categories",
	})
}

// POST /categories/:id/delete
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		applog.Error(c, "categories.delete.fail", err, map[string]any{"id": id})
		flashError(c, userMessage(err))
		return c.Redirect("/categories")
	}
	applog.Audit(c, "categories.delete", map[string]any{"id": id})
	flashSuccess(c, "Category deleted successfully")
	return c.Redirect("/categories")
}
