package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jrsteele09/go-storefront-client/models"
)

// Path parameters.
const (
	paramID       = "id"
	paramStoreID  = "store_id"
	paramCategory = "category"
	paramItemID   = "item_id"
)

func (s *Server) initRoutes() {
	r := s.router

	s.handle(r, http.MethodGet, models.RouteHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth (no token required)
	s.handle(r, http.MethodPost, models.RouteRegister, s.registerHandler)
	s.handle(r, http.MethodPost, models.RouteLogin, s.loginHandler)
	s.handle(r, http.MethodPost, models.RouteRefreshToken, s.refreshTokenHandler)
	s.handle(r, http.MethodPost, models.RouteLogout, s.logoutHandler)
	s.handle(r, http.MethodPost, models.RouteRequestPasswordReset, s.requestPasswordResetHandler)
	s.handle(r, http.MethodPost, models.RouteVerifyResetCode, s.verifyResetCodeHandler)

	// Users (token required)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		s.handle(r, http.MethodGet, models.RouteProfile, s.getProfileHandler)
		s.handle(r, http.MethodPut, models.RouteProfile, s.updateProfileHandler)
		s.handle(r, http.MethodPut, models.RouteChangePassword, s.changePasswordHandler)
		s.handle(r, http.MethodDelete, models.RouteProfile, s.deleteProfileHandler)
	})

	// Products (public)
	s.handle(r, http.MethodGet, models.RouteProducts, s.listProductsHandler)
	s.handle(r, http.MethodGet, models.ProductPath("{"+paramID+"}"), s.getProductHandler)
	s.handle(r, http.MethodGet, models.ProductsByStorePath("{"+paramStoreID+"}"), s.productsByStoreHandler)
	s.handle(r, http.MethodGet, models.ProductsByCategoryPath("{"+paramCategory+"}"), s.productsByCategoryHandler)

	// Cart and orders (token optional, guests use session_id)
	r.Group(func(r chi.Router) {
		r.Use(s.optionalAuth)
		s.handle(r, http.MethodGet, models.RouteCart, s.getCartHandler)
		s.handle(r, http.MethodPost, models.RouteCartItems, s.addCartItemHandler)
		s.handle(r, http.MethodPut, models.CartItemPath("{"+paramItemID+"}"), s.updateCartItemHandler)
		s.handle(r, http.MethodDelete, models.CartItemPath("{"+paramItemID+"}"), s.removeCartItemHandler)
		s.handle(r, http.MethodDelete, models.RouteCart, s.clearCartHandler)

		s.handle(r, http.MethodPost, models.RouteOrders, s.createOrderHandler)
		s.handle(r, http.MethodGet, models.RouteOrders, s.listOrdersHandler)
		s.handle(r, http.MethodGet, models.OrderPath("{"+paramID+"}"), s.getOrderHandler)
		s.handle(r, http.MethodPost, models.OrderPaymentPath("{"+paramID+"}"), s.processPaymentHandler)
		s.handle(r, http.MethodGet, models.OrderConfirmationPath("{"+paramID+"}"), s.confirmationHandler)
	})
}
