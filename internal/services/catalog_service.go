package services

import (
	"context"
	"net/url"
	"strconv"

	"storedash/internal/apiclient"
	"storedash/internal/domain"
	"storedash/internal/querycache"
	"storedash/internal/repos"
	"storedash/internal/validate"
)

// Query keys shared by every screen through the app-wide cache.
const (
	KeyProducts     = "products"
	KeyCategories   = "categories"
	KeyOrders       = "orders"
	KeyUsers        = "users"
	KeyCustomers    = "customers"
	KeyTransactions = "transactions"
)

const (
	productsPath   = "/products/products"
	categoriesPath = "/category/categories"
)

var ErrNotFound = repos.ErrNotFound

type CatalogService struct {
	API   *apiclient.Client
	Cache *querycache.Cache
}

func NewCatalogService(api *apiclient.Client, cache *querycache.Cache) *CatalogService {
	return &CatalogService{API: api, Cache: cache}
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return querycache.Fetch(ctx, s.Cache, KeyProducts, func(ctx context.Context) ([]domain.Product, error) {
		var out []domain.Product
		if err := s.API.List(ctx, productsPath, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// ReloadProducts drops the cached list before fetching (manual retry).
func (s *CatalogService) ReloadProducts(ctx context.Context) ([]domain.Product, error) {
	s.Cache.Invalidate(KeyProducts)
	return s.Products(ctx)
}

// Product looks id up in the cached list; the backend has no single-item read.
func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	all, err := s.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// ProductForm is what the product dialog submits. Numbers stay as typed.
type ProductForm struct {
	Name        string
	Price       string
	Quantity    string
	Description string
	Category    string
	Brand       string
	Images      []apiclient.File
}

func ProductFormFrom(p domain.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
	}
}

func (f ProductForm) Validate() error { return validate.Required(f.Name, f.Price, f.Quantity) }

func (f ProductForm) payload() apiclient.MultipartBody {
	body := apiclient.MultipartBody{Fields: []apiclient.Field{
		{Name: "name", Value: f.Name},
		{Name: "price", Value: f.Price},
		{Name: "quantity", Value: f.Quantity},
	}}
	for _, opt := range []apiclient.Field{
		{Name: "description", Value: f.Description},
		{Name: "category", Value: f.Category},
		{Name: "brand", Value: f.Brand},
	} {
		if opt.Value != "" {
			body.Fields = append(body.Fields, opt)
		}
	}
	for _, img := range f.Images {
		img.Field = "images"
		body.Files = append(body.Files, img)
	}
	return body
}

func (s *CatalogService) CreateProduct(ctx context.Context, f ProductForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.API.Create(ctx, productsPath, f.payload(), nil); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyProducts)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, f ProductForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.API.Update(ctx, productsPath+"/"+url.PathEscape(id), f.payload(), nil); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyProducts)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.API.Delete(ctx, productsPath+"/"+url.PathEscape(id)); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyProducts)
	return nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return querycache.Fetch(ctx, s.Cache, KeyCategories, func(ctx context.Context) ([]domain.Category, error) {
		var out []domain.Category
		if err := s.API.List(ctx, categoriesPath, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (s *CatalogService) ReloadCategories(ctx context.Context) ([]domain.Category, error) {
	s.Cache.Invalidate(KeyCategories)
	return s.Categories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id string) (domain.Category, error) {
	all, err := s.Categories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, ErrNotFound
}

type CategoryForm struct {
	Name        string
	Description string
	Image       *apiclient.File
}

func CategoryFormFrom(c domain.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description}
}

func (f CategoryForm) Validate() error { return validate.Required(f.Name) }

func (f CategoryForm) payload() apiclient.MultipartBody {
	body := apiclient.MultipartBody{Fields: []apiclient.Field{{Name: "name", Value: f.Name}}}
	if f.Description != "" {
		body.Fields = append(body.Fields, apiclient.Field{Name: "description", Value: f.Description})
	}
	if f.Image != nil {
		img := *f.Image
		img.Field = "image"
		body.Files = append(body.Files, img)
	}
	return body
}

func (s *CatalogService) CreateCategory(ctx context.Context, f CategoryForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.API.Create(ctx, categoriesPath, f.payload(), nil); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyCategories)
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, f CategoryForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.API.Update(ctx, categoriesPath+"/"+url.PathEscape(id), f.payload(), nil); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyCategories)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.API.Delete(ctx, categoriesPath+"/"+url.PathEscape(id)); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyCategories)
	return nil
}
