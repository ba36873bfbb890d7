package gateway

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogapp "github.com/shophub/storefront/internal/catalog/app"
	"github.com/shophub/storefront/internal/catalog/domain"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := domain.Criteria{
		Category: q.Get("category"),
		Query:    q.Get("search"),
	}
	key := domain.SortKey(q.Get("sort"))
	if key == "" {
		key = domain.SortDefault
	}

	products, err := s.catalog.Browse(r.Context(), criteria, key)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, _ := strconv.Atoi(pageStr)
		limit, _ := strconv.Atoi(q.Get("limit"))
		s.writeJSON(w, http.StatusOK, catalogapp.Paginate(products, page, limit))
		return
	}

	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.Featured(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}
