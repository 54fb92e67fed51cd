package models

// Route path constants shared by the client and the in-memory backend.
const (
	// Auth Routes
	RouteRegister             = "/api/auth/register"
	RouteLogin                = "/api/auth/login"
	RouteRefreshToken         = "/api/auth/refresh-token"
	RouteLogout               = "/api/auth/logout"
	RouteRequestPasswordReset = "/api/auth/request-password-reset"
	RouteVerifyResetCode      = "/api/auth/verify-reset-code"

	// User Routes
	RouteProfile        = "/api/users/profile"
	RouteChangePassword = "/api/users/change-password"

	// Product Routes
	RouteProducts           = "/api/products"
	RouteProductImagePrefix = "/api/products/images/"

	// Cart Routes
	RouteCart      = "/api/cart"
	RouteCartItems = "/api/cart/items"

	// Order Routes
	RouteOrders = "/api/orders"

	RouteHealth = "/health"
)

// Paging defaults applied by the backend when a query omits them.
const (
	DefaultProductLimit = 20
	DefaultOrderLimit   = 10
	MaxPageLimit        = 100
	DefaultMaxPrice     = 999999
)

func ProductPath(id string) string {
	return RouteProducts + "/" + id
}

func ProductsByStorePath(storeID string) string {
	return RouteProducts + "/store/" + storeID
}

func ProductsByCategoryPath(category string) string {
	return RouteProducts + "/category/" + category
}

func CartItemPath(itemID string) string {
	return RouteCartItems + "/" + itemID
}

func OrderPath(id string) string {
	return RouteOrders + "/" + id
}

func OrderPaymentPath(id string) string {
	return OrderPath(id) + "/payment"
}

func OrderConfirmationPath(id string) string {
	return OrderPath(id) + "/confirmation"
}
