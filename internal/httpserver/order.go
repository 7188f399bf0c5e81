package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jortega/store-api/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	orders, err := h.Svc.ListOrders(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, "order.list", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid order id"})
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), uid, uint(orderID))
	if err != nil {
		return respondError(c, "order.get", err)
	}
	return c.JSON(http.StatusOK, order)
}
