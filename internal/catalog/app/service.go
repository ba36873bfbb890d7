package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shophub/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const featuredCount = 8

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// ListProducts fetches the whole catalog and normalizes it.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	raws, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll(raws), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	raw, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Normalize(raw), nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.source.ListCategories(ctx)
}

func (s *Service) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrInvalidInput
	}
	raws, err := s.source.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll(raws), nil
}

// Browse runs the full pipeline: fetch, normalize, filter, then sort. Filter
// always runs before sort so ordering applies to the narrowed set.
func (s *Service) Browse(ctx context.Context, criteria domain.Criteria, key domain.SortKey) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Sort(domain.Filter(products, criteria), key), nil
}

// Featured returns the first products of the catalog, storefront-page style.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}
	return products, nil
}

// Page is a window over a browsed product list.
type Page struct {
	Products      []domain.Product `json:"products"`
	TotalProducts int              `json:"totalProducts"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
	HasNext       bool             `json:"hasNextPage"`
	HasPrev       bool             `json:"hasPrevPage"`
}

// Paginate slices an already filtered/sorted list into a page. Pages are
// 1-based; out-of-range pages yield an empty product window.
func Paginate(products []domain.Product, page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	total := len(products)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page{
		Products:      products[start:end],
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		HasNext:       end < total,
		HasPrev:       page > 1,
	}
}
