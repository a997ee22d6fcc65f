package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/infra/database"
	"storefront/internal/repository/gormrepo"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, rdb *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	games := gormrepo.NewVideoGameRepository(db)
	consoles := gormrepo.NewConsoleRepository(db)
	accessories := gormrepo.NewAccessoryRepository(db)
	customerRepo := gormrepo.NewCustomerRepository(db)

	catalog := services.NewCatalogService(games, consoles, accessories)
	customers := services.NewCustomerService(customerRepo, gormrepo.NewSavedDetailsRepository(db))
	orders := services.NewOrderService(gormrepo.NewOrderRepository(db), customerRepo, catalog.Resolver, infra.NoopPublisher{})

	r := gin.New()
	NewHandler(orders, customers, catalog, rdb, time.Minute).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createCustomer(t *testing.T, r *gin.Engine, accountID uint64) domain.Customer {
	t.Helper()
	w := do(t, r, http.MethodPost, "/customers", gin.H{"accountId": accountID, "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Customer](t, w)
}

func createGame(t *testing.T, r *gin.Engine, name, price string) domain.VideoGame {
	t.Helper()
	w := do(t, r, http.MethodPost, "/catalog/videogame", gin.H{
		"name":        name,
		"developer":   "FromSoftware",
		"genre":       "RPG",
		"releaseDate": "2022-02-25T00:00:00Z",
		"provider":    "Bandai",
		"price":       price,
		"stock":       10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.VideoGame](t, w)
}

func createAccessory(t *testing.T, r *gin.Engine, name, price string) domain.Accessory {
	t.Helper()
	w := do(t, r, http.MethodPost, "/catalog/accessory", gin.H{
		"name":          name,
		"category":      "Controller",
		"price":         price,
		"compatibility": "PS5",
		"color":         "white",
		"provider":      "Sony",
		"stock":         3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Accessory](t, w)
}

func TestOrderLifecycle(t *testing.T) {
	r := setupRouter(t, nil)
	customer := createCustomer(t, r, 1)
	game := createGame(t, r, "Elden Ring", "59.99")
	cable := createAccessory(t, r, "Charging cable", "15.00")

	w := do(t, r, http.MethodPost, "/orders", CreateOrderRequest{CustomerID: customer.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[domain.Order](t, w)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.True(t, order.Total.IsZero())

	for _, item := range []AddLineItemRequest{
		{Kind: domain.KindVideoGame, ProductID: game.ID, Quantity: 2},
		{Kind: domain.KindAccessory, ProductID: cable.ID},
	} {
		w = do(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), item)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[domain.Order](t, w)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, uint32(1), fetched.Items[1].Quantity)
	assert.True(t, fetched.Total.IsZero())

	w = do(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/recompute-total", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	recomputed := decode[RecomputeTotalResponse](t, w)
	assert.Equal(t, "134.98", recomputed.Total.StringFixed(2))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d/items/%d/product", order.ID, fetched.Items[1].ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"kind":"accessory"`)
	assert.Contains(t, w.Body.String(), "Charging cable")

	for _, status := range []domain.OrderStatus{domain.StatusDelivered, domain.StatusPending} {
		w = do(t, r, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), UpdateStatusRequest{Status: status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, status, decode[domain.Order](t, w).Status)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/catalog/videogame/%d", game.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLineItemKeepsPriceAfterCatalogChange(t *testing.T) {
	r := setupRouter(t, nil)
	customer := createCustomer(t, r, 1)
	game := createGame(t, r, "Elden Ring", "59.99")

	order := decode[domain.Order](t, do(t, r, http.MethodPost, "/orders", CreateOrderRequest{CustomerID: customer.ID}))
	item := decode[domain.OrderLineItem](t, do(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID),
		AddLineItemRequest{Kind: domain.KindVideoGame, ProductID: game.ID, Quantity: 2}))

	game.Price = decimal.RequireFromString("29.99")
	w := do(t, r, http.MethodPut, fmt.Sprintf("/catalog/videogame/%d", game.ID), game)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d/items/%d", order.ID, item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.OrderLineItem](t, w)
	assert.Equal(t, "59.99", got.UnitPrice.StringFixed(2))

	total := decode[RecomputeTotalResponse](t, do(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/recompute-total", order.ID), nil))
	assert.Equal(t, "119.98", total.Total.StringFixed(2))
}

func TestErrorMapping(t *testing.T) {
	r := setupRouter(t, nil)
	customer := createCustomer(t, r, 1)
	order := decode[domain.Order](t, do(t, r, http.MethodPost, "/orders", CreateOrderRequest{CustomerID: customer.ID}))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"duplicate account", http.MethodPost, "/customers", gin.H{"accountId": 1}, http.StatusConflict},
		{"unknown customer", http.MethodGet, "/customers/99", nil, http.StatusNotFound},
		{"order for unknown customer", http.MethodPost, "/orders", CreateOrderRequest{CustomerID: 99}, http.StatusNotFound},
		{"unknown product kind", http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), AddLineItemRequest{Kind: "boardgame", ProductID: 1}, http.StatusBadRequest},
		{"missing product kind", http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), gin.H{"productId": 1}, http.StatusBadRequest},
		{"missing product id", http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), gin.H{"kind": domain.KindConsole}, http.StatusBadRequest},
		{"dangling product", http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), AddLineItemRequest{Kind: domain.KindConsole, ProductID: 42}, http.StatusNotFound},
		{"invalid status", http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), UpdateStatusRequest{Status: "refunded"}, http.StatusBadRequest},
		{"zero quantity", http.MethodPut, fmt.Sprintf("/orders/%d/items/1", order.ID), gin.H{"quantity": 0}, http.StatusBadRequest},
		{"missing line item", http.MethodDelete, fmt.Sprintf("/orders/%d/items/7", order.ID), nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/orders/abc", nil, http.StatusBadRequest},
		{"negative price", http.MethodPost, "/catalog/console", gin.H{
			"name": "Switch", "price": "-1", "releaseDate": "2017-03-03T00:00:00Z",
			"resolution": "1080p", "color": "red", "storageType": "flash", "storageSize": "32GB",
		}, http.StatusBadRequest},
		{"image for missing product", http.MethodPut, "/catalog/console/5/image", SetImageRequest{Filename: "x.png"}, http.StatusNotFound},
		{"bad email", http.MethodPut, fmt.Sprintf("/customers/%d", customer.ID), gin.H{"email": "nope"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCustomerSavedDetails(t *testing.T) {
	r := setupRouter(t, nil)
	customer := createCustomer(t, r, 5)
	base := fmt.Sprintf("/customers/%d", customer.ID)

	w := do(t, r, http.MethodPost, base+"/cards", CardRequest{HolderName: "Ana", CardNumber: "4111111111111111", Expiry: "09/27", CVV: "123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "4111111111111111")
	assert.NotContains(t, w.Body.String(), "cvv")
	card := decode[CardResponse](t, w)
	assert.Equal(t, "1111", card.Last4)

	w = do(t, r, http.MethodPost, base+"/addresses", gin.H{"fullName": "Ana", "street": "Gran Via 1", "city": "Madrid", "postalCode": "28013"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, base+"/addresses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.SavedShippingAddress](t, w), 1)

	w = do(t, r, http.MethodGet, "/accounts/5/customer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, customer.ID, decode[domain.Customer](t, w).ID)

	w = do(t, r, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, base+"/cards", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogListSurvivesCacheOutage(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	r := setupRouter(t, rdb)

	w := do(t, r, http.MethodGet, "/catalog/videogame", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createGame(t, r, "Elden Ring", "59.99")

	w = do(t, r, http.MethodGet, "/catalog/videogame", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.VideoGame](t, w), 1)
}

func TestSetImage(t *testing.T) {
	r := setupRouter(t, nil)
	game := createGame(t, r, "Elden Ring", "59.99")

	w := do(t, r, http.MethodPut, fmt.Sprintf("/catalog/videogame/%d/image", game.ID), SetImageRequest{Filename: "elden.png"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[domain.VideoGame](t, w)
	require.NotNil(t, got.ImagePath)
	assert.Equal(t, "videojuegos/elden.png", *got.ImagePath)
}

func TestCreateProductIgnoresClientIDAndImage(t *testing.T) {
	r := setupRouter(t, nil)
	body := gin.H{
		"id":          77,
		"imagePath":   "../../etc/passwd",
		"name":        "Elden Ring",
		"developer":   "FromSoftware",
		"genre":       "RPG",
		"releaseDate": "2022-02-25T00:00:00Z",
		"provider":    "Bandai",
		"price":       "59.99",
		"stock":       10,
	}

	var ids []uint64
	for i := 0; i < 2; i++ {
		w := do(t, r, http.MethodPost, "/catalog/videogame", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		got := decode[domain.VideoGame](t, w)
		assert.NotEqual(t, uint64(77), got.ID)
		assert.Nil(t, got.ImagePath)
		ids = append(ids, got.ID)
	}
	assert.NotEqual(t, ids[0], ids[1])

	w := do(t, r, http.MethodGet, "/catalog/videogame/77", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateShippingAddress(t *testing.T) {
	r := setupRouter(t, nil)
	customer := createCustomer(t, r, 1)
	order := decode[domain.Order](t, do(t, r, http.MethodPost, "/orders", CreateOrderRequest{CustomerID: customer.ID}))
	path := fmt.Sprintf("/orders/%d/shipping-address", order.ID)

	w := do(t, r, http.MethodPut, path, gin.H{"shippingAddress": "Calle Mayor 5, Madrid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[domain.Order](t, do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil))
	require.NotNil(t, got.ShippingAddress)
	assert.Equal(t, "Calle Mayor 5, Madrid", *got.ShippingAddress)

	w = do(t, r, http.MethodPut, path, gin.H{"shippingAddress": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[domain.Order](t, do(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil))
	assert.Nil(t, got.ShippingAddress)

	w = do(t, r, http.MethodPut, path, gin.H{"shippingAddress": strings.Repeat("a", 256)})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, r, http.MethodPut, "/orders/404/shipping-address", gin.H{"shippingAddress": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
