package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	checkoutdomain "github.com/shophub/storefront/internal/checkout/domain"
	orderapp "github.com/shophub/storefront/internal/order/app"
	orderdomain "github.com/shophub/storefront/internal/order/domain"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.checkout.Quote(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	quote.Totals = quote.Totals.Rounded()
	s.writeJSON(w, http.StatusOK, quote)
}

type checkoutRequest struct {
	ShippingAddress orderdomain.Address `json:"shippingAddress"`
}

// handleCheckout materializes the session's cart into an order and, only
// after the order is recorded, clears the cart.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	// Required-field validation happens before any persistence I/O.
	if missing := missingAddressFields(req.ShippingAddress); missing != "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    "INVALID_ARGUMENT",
			Message: "missing required address fields: " + missing,
		}})
		return
	}

	sid := sessionID(r)

	ledger, err := s.cart.GetCart(r.Context(), sid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	totals := checkoutdomain.ComputeTotals(ledger.TotalAmount)

	items := make([]orderdomain.Item, 0, len(ledger.Items))
	for _, it := range ledger.Items {
		items = append(items, orderdomain.Item{
			ID:         it.ID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Image:      it.Image,
			TotalPrice: it.TotalPrice,
		})
	}

	order, err := s.orders.PlaceOrder(r.Context(), orderapp.PlaceOrderInput{
		UserID:          ownerID(r),
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     checkoutdomain.Round2(totals.GrandTotal),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := s.cart.Clear(r.Context(), sid); err != nil {
		// The order is already recorded; a stale cart is recoverable.
		s.log.Warn("clear cart after checkout", slog.String("session", sid), slog.Any("err", err))
	}

	s.writeJSON(w, http.StatusCreated, order)
}

func missingAddressFields(a orderdomain.Address) string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", a.Name},
		{"street", a.Street},
		{"city", a.City},
		{"zip", a.Zip},
		{"country", a.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return strings.Join(missing, ", ")
}
