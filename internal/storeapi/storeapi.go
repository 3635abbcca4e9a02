package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trendora/storefront/internal/account"
	"github.com/trendora/storefront/internal/cart"
	"github.com/trendora/storefront/internal/catalog"
	"github.com/trendora/storefront/internal/order"
	"github.com/trendora/storefront/internal/webserver"
)

// Handlers binds the HTTP API onto the services.
type Handlers struct {
	accounts *account.Service
	carts    *cart.Service
	catalog  *catalog.Service
	orders   *order.Service
}

func NewHandlers(accounts *account.Service, carts *cart.Service, cat *catalog.Service, orders *order.Service) *Handlers {
	return &Handlers{accounts: accounts, carts: carts, catalog: cat, orders: orders}
}

// Register wires all routes into the public, user and admin groups.
func (h *Handlers) Register(ws *webserver.WebServer, issuer *account.TokenIssuer) {
	pub, user, admin := ws.Groups(issuer)

	pub.POST("/api/user/register", h.registerUser)
	pub.POST("/api/user/login", h.loginUser)
	pub.POST("/api/user/admin", h.adminLogin)

	user.POST("/api/cart/add", h.addToCart)
	user.POST("/api/cart/update", h.updateCart)
	user.POST("/api/cart/get", h.getUserCart)

	admin.POST("/api/product/add", h.addProduct)
	pub.GET("/api/product/list", h.listProducts)
	admin.POST("/api/product/remove", h.removeProduct)
	pub.POST("/api/product/single", h.singleProduct)

	user.POST("/api/order/place", h.placeOrder)
	user.POST("/api/order/checkout", h.placeOrderCheckout)
	user.POST("/api/order/verifycheckout", h.verifyCheckout)
	user.POST("/api/order/collect", h.placeOrderCollect)
	user.POST("/api/order/verifycollect", h.verifyCollect)
	admin.POST("/api/order/list", h.allOrders)
	user.POST("/api/order/userorders", h.userOrders)
	admin.POST("/api/order/status", h.updateStatus)
}

// Every response uses the {success, ...} envelope at HTTP 200; callers
// branch on the success field, not the transport status.
func ok(c echo.Context, payload map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

func okMsg(c echo.Context, message string) error {
	return ok(c, map[string]interface{}{"message": message})
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
