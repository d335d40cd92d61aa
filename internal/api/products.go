package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/techstore/storefront/pkg/models"
)

// Sort keys accepted by the catalog filter endpoint.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// ProductFilter is serialized to the /products/filter query string. Zero
// values are omitted, so a MinPrice of 0 means "no lower bound". Filtering
// and sorting happen server-side.
type ProductFilter struct {
	Search      string
	CategoryID  int
	MinPrice    float64
	MaxPrice    float64
	InStockOnly bool
	SortBy      string
}

func (f ProductFilter) query() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.CategoryID != 0 {
		params.Set("category_id", strconv.Itoa(f.CategoryID))
	}
	if f.MinPrice != 0 {
		params.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		params.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.InStockOnly {
		params.Set("in_stock_only", "true")
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	return params
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, nil, &products, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) SearchProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/filter", filter.query(), nil, &products, "Failed to search products"); err != nil {
		return nil, err
	}
	c.logger.WithField("count", len(products)).Debug("Searched products")
	return products, nil
}

func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	fallback := fmt.Sprintf("Failed to fetch product with id %d", id)
	if err := c.do(ctx, http.MethodGet, "/products/id/"+strconv.Itoa(id), nil, nil, &product, fallback); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, create models.ProductCreate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/products/", nil, create, &product, "Failed to create product"); err != nil {
		return nil, err
	}
	c.logger.WithField("product_id", product.ID).Info("Created product")
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, update models.ProductCreate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/products/id/"+strconv.Itoa(id), nil, update, &product, "Failed to update product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/products/id/"+strconv.Itoa(id), nil, nil, nil, "Failed to delete product")
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &categories, "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, create models.CategoryCreate) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories/", nil, create, &category, "Failed to create category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, update models.CategoryCreate) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPut, "/categories/id/"+strconv.Itoa(id), nil, update, &category, "Failed to update category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/categories/id/"+strconv.Itoa(id), nil, nil, nil, "Failed to delete category")
}
