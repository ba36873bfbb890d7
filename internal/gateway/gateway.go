package gateway

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cartapp "github.com/shophub/storefront/internal/cart/app"
	catalogapp "github.com/shophub/storefront/internal/catalog/app"
	checkoutapp "github.com/shophub/storefront/internal/checkout/app"
	favoritesapp "github.com/shophub/storefront/internal/favorites/app"
	identityapp "github.com/shophub/storefront/internal/identity/app"
	messagesapp "github.com/shophub/storefront/internal/messages/app"
	orderapp "github.com/shophub/storefront/internal/order/app"
)

// Server is the JSON surface of the storefront. It owns no domain logic:
// every handler resolves identifiers and delegates to a context service.
type Server struct {
	log *slog.Logger

	catalog   *catalogapp.Service
	cart      *cartapp.Service
	checkout  *checkoutapp.Service
	orders    *orderapp.Service
	favorites *favoritesapp.Service
	identity  *identityapp.Service
	messages  *messagesapp.Service

	adminPIN string
}

type Options struct {
	Log *slog.Logger

	Catalog   *catalogapp.Service
	Cart      *cartapp.Service
	Checkout  *checkoutapp.Service
	Orders    *orderapp.Service
	Favorites *favoritesapp.Service
	Identity  *identityapp.Service
	Messages  *messagesapp.Service

	AdminPIN string
}

func NewServer(opts Options) *Server {
	return &Server{
		log:       opts.Log,
		catalog:   opts.Catalog,
		cart:      opts.Cart,
		checkout:  opts.Checkout,
		orders:    opts.Orders,
		favorites: opts.Favorites,
		identity:  opts.Identity,
		messages:  opts.Messages,
		adminPIN:  opts.AdminPIN,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.withSession)
	r.Use(s.withUser)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Get("/products/featured", s.handleFeaturedProducts)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Get("/categories", s.handleListCategories)

		r.Get("/cart", s.handleGetCart)
		r.Post("/cart/items", s.handleAddItem)
		r.Delete("/cart/items/{productID}", s.handleRemoveItem)
		r.Delete("/cart/items/{productID}/all", s.handleRemoveAllItems)
		r.Delete("/cart", s.handleClearCart)

		r.Get("/checkout/quote", s.handleQuote)
		r.Post("/checkout", s.handleCheckout)

		r.Get("/orders", s.handleMyOrders)
		r.Get("/orders/{id}", s.handleGetOrder)

		r.Get("/favorites", s.handleListFavorites)
		r.Get("/favorites/{productID}", s.handleIsFavorite)
		r.Post("/favorites/{productID}/toggle", s.handleToggleFavorite)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/provider", s.handleProviderLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Post("/messages", s.handleAddMessage)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/orders", s.handleAdminOrders)
			r.Patch("/orders/{id}/status", s.handleUpdateOrderStatus)
			r.Get("/messages", s.handleAdminMessages)
		})
	})

	return r
}
