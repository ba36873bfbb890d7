package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	favdomain "github.com/shophub/storefront/internal/favorites/domain"
)

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	entries, err := s.favorites.List(r.Context(), ownerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleIsFavorite(w http.ResponseWriter, r *http.Request) {
	fav, err := s.favorites.IsFavorite(r.Context(), ownerID(r), chi.URLParam(r, "productID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": fav})
}

type toggleFavoriteRequest struct {
	Current bool `json:"current"`
	Product struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
	} `json:"product"`
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	productID := chi.URLParam(r, "productID")
	newState, err := s.favorites.Toggle(r.Context(), ownerID(r), favdomain.ProductInfo{
		ProductID: productID,
		Name:      req.Product.Name,
		Price:     req.Product.Price,
		Image:     req.Product.Image,
		Category:  req.Product.Category,
	}, req.Current)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": newState})
}
