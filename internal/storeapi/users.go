package storeapi

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type credentialsPayload struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *Handlers) registerUser(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	token, err := h.accounts.Register(c.Request().Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		zap.L().Warn("registration rejected", zap.String("email", payload.Email), zap.Error(err))
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"token": token})
}

func (h *Handlers) loginUser(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	token, err := h.accounts.Login(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"token": token})
}

func (h *Handlers) adminLogin(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	token, err := h.accounts.AdminLogin(payload.Email, payload.Password)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"token": token})
}
