package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.GetUserOrders(r.Context(), ownerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}
