package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jortega/store-api/internal/mykafka"
	"github.com/jortega/store-api/internal/service"
	"github.com/jortega/store-api/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Checkout *service.CheckoutService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	cart, err := h.Svc.GetCart(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, "cart.get", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid body"})
	}

	item, err := h.Svc.AddItem(c.Request().Context(), uid, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, "cart.add", err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":      "cart_item_added",
		"userID":    uid,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	var req transport.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid body"})
	}
	if req.NewQty == nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "new_qty is required"})
	}

	item, err := h.Svc.UpdateItem(c.Request().Context(), uid, req.ProductID, *req.NewQty)
	if err != nil {
		return respondError(c, "cart.update", err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":      "cart_item_updated",
		"userID":    uid,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
		"status":    item.Status,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil || productID == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid product id"})
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), uid, uint(productID)); err != nil {
		return respondError(c, "cart.remove", err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":      "cart_item_removed",
		"userID":    uid,
		"productID": productID,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Purchase(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	order, err := h.Checkout.Checkout(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, "cart.purchase", err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":    "order_created",
		"userID":  uid,
		"orderID": order.ID,
		"cartID":  order.CartID,
		"total":   order.TotalPrice,
	})
	return c.JSON(http.StatusOK, order)
}
