package gateway

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"

	orderdomain "github.com/shophub/storefront/internal/order/domain"
)

// requireAdmin gates the dashboard: either a signed-in admin, or the
// configured PIN presented in a header.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := currentUser(r); ok && user.IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}

		pin := r.Header.Get("X-Admin-Pin")
		if s.adminPIN != "" && subtle.ConstantTimeCompare([]byte(pin), []byte(s.adminPIN)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		s.writeJSON(w, http.StatusForbidden, errorBody{Error: errorDetail{
			Code:    "PERMISSION_DENIED",
			Message: "admin access required",
		}})
	})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.orders.UpdateStatus(r.Context(), id, orderdomain.Status(req.Status)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

func (s *Server) handleAdminMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.ListAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}
