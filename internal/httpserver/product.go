package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jortega/store-api/internal/logging"
	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/mykafka"
	"github.com/jortega/store-api/internal/service"
	"github.com/jortega/store-api/internal/transport"
	"github.com/jortega/store-api/internal/util"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Search   *service.SearchService
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid product id"})
	}

	product, err := h.Svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, "product.get", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Paginate(page, size)

	products, total, err := h.Svc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, "product.list", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": products,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid body"})
	}

	product, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return respondError(c, "product.create", err)
	}

	h.index(c, product)
	publish(c, h.Producer, "product_events", fmt.Sprint(uid), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"title":     product.Title,
	})
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid product id"})
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid body"})
	}

	product, err := h.Svc.Update(c.Request().Context(), uid, uint(id), req)
	if err != nil {
		return respondError(c, "product.update", err)
	}

	h.index(c, product)
	publish(c, h.Producer, "product_events", fmt.Sprint(uid), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"title":     product.Title,
	})
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: "error", Message: "unauthorized"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid product id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), uid, uint(id)); err != nil {
		return respondError(c, "product.delete", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(uid), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	if h.Search == nil {
		return c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "error", Message: "search is disabled"})
	}

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "q is required"})
	}
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Paginate(page, size)

	total, products, err := h.Search.Search(c.Request().Context(), query, from, limit)
	if err != nil {
		return respondError(c, "product.search", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":  products,
		"total": total,
	})
}

// index mirrors the product into the search index, best-effort.
func (h *ProductHTTP) index(c echo.Context, product *models.Product) {
	if h.Search == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.Search.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("search index error", "productID", product.ID, "error", err)
	}
}
