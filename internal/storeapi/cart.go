package storeapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trendora/storefront/internal/webserver"
)

type cartPayload struct {
	ItemID   string `json:"itemId" form:"itemId"`
	Size     string `json:"size" form:"size"`
	Quantity int    `json:"quantity" form:"quantity"`
}

func (h *Handlers) addToCart(c echo.Context) error {
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	if _, err := h.carts.AddItem(c.Request().Context(), userID, payload.ItemID, payload.Size); err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "added to cart")
}

func (h *Handlers) updateCart(c echo.Context) error {
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	userID := webserver.CurrentUserID(c)
	if _, err := h.carts.SetItemQuantity(c.Request().Context(), userID, payload.ItemID, payload.Size, payload.Quantity); err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "cart updated")
}

func (h *Handlers) getUserCart(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	cartData, err := h.carts.GetCart(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"cartData": cartData})
}
