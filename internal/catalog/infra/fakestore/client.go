package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shophub/storefront/internal/catalog/app"
	"github.com/shophub/storefront/internal/catalog/domain"
)

// Client talks to a fakestoreapi-compatible product catalog. All calls honor
// the caller's context, so an abandoned browse never applies a stale result.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.RawProduct, error) {
	var out []domain.RawProduct
	if err := c.getJSON(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.RawProduct, error) {
	var out *domain.RawProduct
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return domain.RawProduct{}, err
	}
	// The upstream API answers 200 with a null body for unknown ids.
	if out == nil {
		return domain.RawProduct{}, app.ErrNotFound
	}
	return *out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string) ([]domain.RawProduct, error) {
	var out []domain.RawProduct
	if err := c.getJSON(ctx, "/products/category/"+url.PathEscape(category), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog fetch %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return app.ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog fetch %s: unexpected status %d", path, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("catalog read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("catalog decode %s: %w", path, err)
	}
	return nil
}
