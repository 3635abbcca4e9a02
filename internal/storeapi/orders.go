package storeapi

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/internal/webserver"
)

type orderItemPayload struct {
	ProductID string  `json:"productId" form:"productId"`
	Name      string  `json:"name" form:"name"`
	Size      string  `json:"size" form:"size"`
	Quantity  int     `json:"quantity" form:"quantity"`
	Price     float64 `json:"price" form:"price"`
}

type placeOrderPayload struct {
	Items   []orderItemPayload `json:"items"`
	Amount  float64            `json:"amount"`
	Address domain.Address     `json:"address"`
}

func (p placeOrderPayload) domainItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, domain.OrderItem{
			ProductID: cast.ToInt64(item.ProductID),
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return items
}

func (h *Handlers) placeOrder(c echo.Context) error {
	var payload placeOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	_, err := h.orders.PlaceCOD(c.Request().Context(), userID, payload.domainItems(), payload.Amount, payload.Address)
	if err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "order placed")
}

func (h *Handlers) placeOrderCheckout(c echo.Context) error {
	var payload placeOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	origin := c.Request().Header.Get("Origin")
	_, sessionURL, err := h.orders.PlaceCheckout(c.Request().Context(), userID, payload.domainItems(), payload.Amount, payload.Address, origin)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"session_url": sessionURL})
}

type verifyCheckoutPayload struct {
	OrderID string `json:"orderId" form:"orderId"`
	Success string `json:"success" form:"success"`
}

func (h *Handlers) verifyCheckout(c echo.Context) error {
	var payload verifyCheckoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	orderID, err := cast.ToInt64E(payload.OrderID)
	if err != nil || orderID == 0 {
		return fail(c, "invalid order id")
	}
	userID := webserver.CurrentUserID(c)
	paid, err := h.orders.VerifyCheckout(c.Request().Context(), orderID, payload.Success, userID)
	if err != nil {
		return fail(c, err.Error())
	}
	if !paid {
		return fail(c, "payment failed")
	}
	return okMsg(c, "payment successful")
}

func (h *Handlers) placeOrderCollect(c echo.Context) error {
	var payload placeOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	_, gatewayOrder, err := h.orders.PlaceCollect(c.Request().Context(), userID, payload.domainItems(), payload.Amount, payload.Address)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"order": gatewayOrder})
}

type verifyCollectPayload struct {
	GatewayOrderID string `json:"gatewayOrderId" form:"gatewayOrderId"`
}

func (h *Handlers) verifyCollect(c echo.Context) error {
	var payload verifyCollectPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	if _, err := h.orders.VerifyCollect(c.Request().Context(), userID, payload.GatewayOrderID); err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "payment successful")
}

func (h *Handlers) allOrders(c echo.Context) error {
	orders, err := h.orders.ListAllOrders(c.Request().Context())
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"orders": orders})
}

func (h *Handlers) userOrders(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	orders, err := h.orders.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"orders": orders})
}

type updateStatusPayload struct {
	OrderID string `json:"orderId" form:"orderId"`
	Status  string `json:"status" form:"status"`
}

func (h *Handlers) updateStatus(c echo.Context) error {
	var payload updateStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	orderID, err := cast.ToInt64E(payload.OrderID)
	if err != nil || orderID == 0 {
		return fail(c, "invalid order id")
	}
	if err := h.orders.UpdateStatus(c.Request().Context(), orderID, payload.Status); err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "status updated")
}
