package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-storefront-client/models"
)

// GetAllProducts lists the catalogue. Every parameter is always sent, in the order
// store, category, min_price, max_price, page, limit, even when empty.
func (c *Client) GetAllProducts(ctx context.Context, store, category string, minPrice, maxPrice float64, page, limit int) (*models.ProductPage, error) {
	path := models.RouteProducts + "?" + productQuery(store, category, minPrice, maxPrice, page, limit)

	var out models.ProductPage
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// productQuery keeps parameter order fixed; url.Values.Encode would sort the keys.
func productQuery(store, category string, minPrice, maxPrice float64, page, limit int) string {
	params := []struct{ key, value string }{
		{"store", store},
		{"category", category},
		{"min_price", formatNumber(minPrice)},
		{"max_price", formatNumber(maxPrice)},
		{"page", strconv.Itoa(page)},
		{"limit", strconv.Itoa(limit)},
	}

	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

// formatNumber prints 0 as "0" and 12.5 as "12.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	var out models.Product
	if err := c.Get(ctx, models.ProductPath(url.PathEscape(productID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProductsByStore(ctx context.Context, storeID string, page, limit int) (*models.ProductPage, error) {
	path := fmt.Sprintf("%s?page=%d&limit=%d", models.ProductsByStorePath(url.PathEscape(storeID)), page, limit)

	var out models.ProductPage
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProductsByCategory(ctx context.Context, category string, page, limit int) (*models.ProductPage, error) {
	path := fmt.Sprintf("%s?page=%d&limit=%d", models.ProductsByCategoryPath(url.PathEscape(category)), page, limit)

	var out models.ProductPage
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImageURL resolves a product's image_url against the base URL. Absolute URLs are returned unchanged.
func (c *Client) ImageURL(imagePath string) string {
	if imagePath == "" || strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	if !strings.HasPrefix(imagePath, "/") {
		imagePath = "/" + imagePath
	}
	return c.baseURL + imagePath
}
