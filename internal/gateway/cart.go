package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdomain "github.com/shophub/storefront/internal/cart/domain"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.cart.GetCart(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledger)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

// handleAddItem snapshots the product's current catalog price into the
// ledger; later price changes do not touch the line item.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ledger, err := s.cart.AddItem(r.Context(), sessionID(r), cartdomain.ProductRef{
		ID:    product.ID,
		Title: product.Title,
		Price: product.Price,
		Image: product.Image,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.cart.RemoveItem(r.Context(), sessionID(r), chi.URLParam(r, "productID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleRemoveAllItems(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.cart.RemoveAllItems(r.Context(), sessionID(r), chi.URLParam(r, "productID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.cart.Clear(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledger)
}
