package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
	"github.com/jortega/store-api/internal/service"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.LineItem{},
		&models.Order{},
	))

	r := &repo.GormRepo{DB: db}
	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}},
		ProductHandler: &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		CartHandler: &CartHTTP{
			Svc:      &service.CartService{Repo: r},
			Checkout: &service.CheckoutService{Repo: r},
		},
		OrderHandler: &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		JWTSecret:    testSecret,
	})
	return &testEnv{E: e, DB: db}
}

func (env *testEnv) doJSON(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := env.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			return ck
		}
	}
	t.Fatal("accessToken cookie not set")
	return nil
}

func (env *testEnv) seedProduct(t *testing.T, title string, price float64, qty int) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:       title,
		Description: "test product",
		Price:       price,
		Quantity:    qty,
		Status:      models.StatusActive,
		UserID:      99,
	}
	require.NoError(t, env.DB.Create(product).Error)
	return product
}

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/cart", nil,
		&http.Cookie{Name: "accessToken", Value: "not-a-token"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)
	product := env.seedProduct(t, "keyboard", 50, 5)

	rec := env.doJSON(t, http.MethodPost, "/cart/add-product", map[string]any{
		"product_id": product.ID,
		"quantity":   3,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	// Adding the same active product again conflicts.
	rec = env.doJSON(t, http.MethodPost, "/cart/add-product", map[string]any{
		"product_id": product.ID,
		"quantity":   3,
	}, ck)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Setting the quantity to zero removes the item.
	rec = env.doJSON(t, http.MethodPatch, "/cart/update-cart", map[string]any{
		"product_id": product.ID,
		"new_qty":    0,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var item models.LineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, models.StatusRemoved, item.Status)

	// Re-adding reuses the same row.
	rec = env.doJSON(t, http.MethodPost, "/cart/add-product", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var readded models.LineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readded))
	require.Equal(t, item.ID, readded.ID)
	require.Equal(t, 2, readded.Quantity)

	rec = env.doJSON(t, http.MethodPost, "/cart/purchase", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, 100.0, order.TotalPrice)

	var stock models.Product
	require.NoError(t, env.DB.First(&stock, product.ID).Error)
	require.Equal(t, 3, stock.Quantity)

	rec = env.doJSON(t, http.MethodGet, "/orders", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var views []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
}

func TestUpdateCartWithoutActiveCart(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)
	product := env.seedProduct(t, "keyboard", 50, 5)

	rec := env.doJSON(t, http.MethodPatch, "/cart/update-cart", map[string]any{
		"product_id": product.ID,
		"new_qty":    2,
	}, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPurchaseInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)
	product := env.seedProduct(t, "keyboard", 50, 5)

	rec := env.doJSON(t, http.MethodPost, "/cart/add-product", map[string]any{
		"product_id": product.ID,
		"quantity":   5,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, env.DB.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("quantity", 1).Error)

	rec = env.doJSON(t, http.MethodPost, "/cart/purchase", nil, ck)
	require.Equal(t, http.StatusConflict, rec.Code)

	var stock models.Product
	require.NoError(t, env.DB.First(&stock, product.ID).Error)
	require.Equal(t, 1, stock.Quantity)
}

func TestRemoveProductFromCart(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)
	product := env.seedProduct(t, "keyboard", 50, 5)

	rec := env.doJSON(t, http.MethodPost, "/cart/add-product", map[string]any{
		"product_id": product.ID,
		"quantity":   3,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, "/cart/"+itoa(product.ID), nil, ck)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, "/cart/"+itoa(product.ID), nil, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
