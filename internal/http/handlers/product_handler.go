package handlers

import (
	"errors"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	_, data := listPage[domain.Product](c, "products.list.fail", h.Catalog.Products, h.Catalog.ReloadProducts)
	return render(c, "products", data)
}

func (h *ProductHandler) form(c *fiber.Ctx, status int, id string, f services.ProductForm, err error) error {
	cats, _ := h.Catalog.Categories(c.UserContext())
	data := fiber.Map{"Form": f, "ID": id, "Editing": id != "", "Categories": cats}
	if err != nil {
		data["Err"] = userMessage(err)
	}
	return renderStatus(c, status, "product_form", data)
}

func productForm(c *fiber.Ctx) (services.ProductForm, error) {
	files, err := uploads(c, "images")
	return services.ProductForm{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Quantity:    c.FormValue("quantity"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Brand:       c.FormValue("brand"),
		Images:      files,
	}, err
}

// GET /products/new
func (h *ProductHandler) New(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, "", services.ProductForm{}, nil)
}

// GET /products/:id/edit
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	p, err := h.Catalog.Product(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		applog.Error(c, "products.edit.load.fail", err, map[string]any{"id": c.Params("id")})
		flashError(c, userMessage(err))
		return c.Redirect("/products")
	}
	return h.form(c, fiber.StatusOK, p.ID, services.ProductFormFrom(p), nil)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	f, err := productForm(c)
	if err == nil {
		err = h.Catalog.CreateProduct(c.UserContext(), f)
	}
	if err != nil {
		applog.Error(c, "products.create.fail", err, map[string]any{"name": f.Name})
		return h.form(c, formStatus(err), "", f, err)
	}
	applog.Audit(c, "products.create", map[string]any{"name": f.Name})
	flashSuccess(c, "Product created successfully")
	return c.Redirect("/products")
}

// POST /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := productForm(c)
	if err == nil {
		err = h.Catalog.UpdateProduct(c.UserContext(), id, f)
	}
	if err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"id": id})
		return h.form(c, formStatus(err), id, f, err)
	}
	applog.Audit(c, "products.update", map[string]any{"id": id})
	flashSuccess(c, "Product updated successfully")
	return c.Redirect("/products")
}

// GET /products/:id/delete
func (h *ProductHandler) ConfirmDelete(c *fiber.Ctx) error {
	p, err := h.Catalog.Product(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		applog.Error(c, "products.delete.load.fail", err, map[string]any{"id": c.Params("id")})
		flashError(c, userMessage(err))
		return c.Redirect("/products")
	}
	return render(c, "confirm_delete", fiber.Map{
		"Kind":   "product",
		"Name":   p.Name,
		"Action": "/products/" + p.ID + "/delete",
		"Back":   "/products",
	})
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"id": id})
		flashError(c, userMessage(err))
		return c.Redirect("/products")
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	flashSuccess(c, "Product deleted successfully")
	return c.Redirect("/products")
}
