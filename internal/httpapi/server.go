package httpapi

import (
	"net/http"

	"fashniz-be/internal/cart"
	"fashniz-be/internal/checkout"
	"fashniz-be/internal/complaint"
	"fashniz-be/internal/discount"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/middleware"
	"fashniz-be/internal/order"
	"fashniz-be/internal/product"
	"fashniz-be/internal/shipping"
	"fashniz-be/internal/user"
	"fashniz-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
)

// Server bundles the domain services behind the REST surface.
type Server struct {
	users        user.Service
	products     product.Service
	carts        cart.Service
	wishlists    wishlist.Service
	shippingRepo shipping.Repository
	discounts    discount.Service
	checkouts    checkout.Service
	orders       order.Service
	reconciler   *order.Reconciler
	complaints   complaint.Service
}

func NewServer(
	users user.Service,
	products product.Service,
	carts cart.Service,
	wishlists wishlist.Service,
	shippingRepo shipping.Repository,
	discounts discount.Service,
	checkouts checkout.Service,
	orders order.Service,
	reconciler *order.Reconciler,
	complaints complaint.Service,
) *Server {
	return &Server{
		users:        users,
		products:     products,
		carts:        carts,
		wishlists:    wishlists,
		shippingRepo: shippingRepo,
		discounts:    discounts,
		checkouts:    checkouts,
		orders:       orders,
		reconciler:   reconciler,
		complaints:   complaints,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.AuthMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/google-login", s.handleGoogleLogin)

		r.Get("/products", s.handleListProducts)
		r.Get("/products/{id}", s.handleGetProduct)

		r.Get("/shipping-methods", s.handleListShippingMethods)

		r.Post("/discounts/validate", s.handleValidateDiscount)

		r.Post("/complaints", s.handleCreateComplaint)

		r.Post("/orders", s.handleUpsertOrder)
		r.Get("/orders/{orderId}", s.handleGetOrder)
		r.Post("/orders/{orderId}/reconcile", s.handleReconcileOrder)
		r.Post("/orders/send-confirmation", s.handleSendConfirmation)

		// Authenticated storefront surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/cart", s.handleGetCart)
			r.Post("/cart", s.handleAddToCart)
			r.Patch("/cart", s.handleUpdateCartQuantity)
			r.Delete("/cart", s.handleRemoveFromCart)

			r.Get("/wishlist", s.handleGetWishlist)
			r.Post("/wishlist", s.handleAddToWishlist)
			r.Delete("/wishlist/{productId}", s.handleRemoveFromWishlist)

			r.Post("/checkout/sessions", s.handleCreateCheckoutSession)
			r.Get("/checkout/sessions/{sessionId}", s.handleGetCheckoutSession)
			r.Put("/checkout/sessions/{sessionId}/address", s.handleSubmitAddress)
			r.Put("/checkout/sessions/{sessionId}/delivery", s.handleSelectDelivery)
			r.Put("/checkout/sessions/{sessionId}/payment", s.handleSubmitPayment)
			r.Post("/checkout/sessions/{sessionId}/coupon", s.handleApplyCoupon)
			r.Delete("/checkout/sessions/{sessionId}/coupon", s.handleRemoveCoupon)
			r.Post("/checkout/sessions/{sessionId}/back", s.handleGoBack)
			r.Post("/checkout/sessions/{sessionId}/place-order", s.handlePlaceOrder)

			r.Get("/orders/user/email/{email}", s.handleGetOrdersByEmail)

			r.Get("/users/me/profile", s.handleGetProfile)
			r.Put("/users/me/profile", s.handleUpdateProfile)
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Post("/products", s.handleCreateProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			r.Put("/shipping-methods", s.handleUpsertShippingMethod)

			r.Get("/discounts", s.handleListDiscounts)
			r.Post("/discounts", s.handleCreateDiscount)
			r.Delete("/discounts/{code}", s.handleDeactivateDiscount)

			r.Get("/orders", s.handleListOrders)
			r.Patch("/orders/{orderId}/status", s.handleUpdateOrderStatus)

			r.Get("/users", s.handleListUsers)

			r.Get("/complaints", s.handleListComplaints)
			r.Patch("/complaints/{id}/status", s.handleUpdateComplaintStatus)

			r.Get("/admin/stats", s.handleStats)
		})
	})

	return r
}
