package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/internal/application/auth"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/export"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/lock"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventory-ims/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-ims/pkg/jwt"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

type fakeLimiter struct {
	allowed int
	calls   int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	f.calls++
	if f.calls > f.allowed {
		return &redis_rate.Result{Allowed: 0, RetryAfter: 30 * time.Second}, nil
	}
	return &redis_rate.Result{Allowed: 1}, nil
}

func newTestServer(t *testing.T, limiter apphttp.RateLimiter) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	locker := lock.NewLocalLocker()
	log := logger.Nop()

	alertUC := usecase.NewStockAlertUseCase(repos, log)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		ProductUC:       usecase.NewProductUseCase(repos.Products),
		WarehouseUC:     usecase.NewWarehouseUseCase(repos.Warehouses),
		InventoryUC:     usecase.NewInventoryUseCase(repos, store, locker, alertUC),
		MovementUC:      usecase.NewMovementUseCase(repos, store, locker, alertUC),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(repos, store, locker, alertUC, log),
		StockAlertUC:    alertUC,
		ReportingUC:     usecase.NewReportingUseCase(repos),
		Exporters:       export.ForFormat,
		JWTSecret:       testJWTSecret,
	}
	if limiter != nil {
		deps.AuthLimiter = limiter
		deps.AuthLimitPerMinute = 5
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m), string(data))
	return m
}

func createPair(t *testing.T, app *fiber.App, tok string) (productID, warehouseID string) {
	t.Helper()
	resp, data := call(t, app, http.MethodPost, "/api/products", tok, map[string]any{
		"name": "Laptop", "sku": "LAP-001", "category": "Electronics", "price": "10.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	productID = decode(t, data)["id"].(string)

	resp, data = call(t, app, http.MethodPost, "/api/warehouses", tok, map[string]any{
		"name": "Central", "location": "Bogotá",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	warehouseID = decode(t, data)["id"].(string)
	return productID, warehouseID
}

func TestAuth_RegisterLogin(t *testing.T) {
	app := newTestServer(t, nil)

	resp, data := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ana", "password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	out := decode(t, data)
	assert.Equal(t, "ana", out["username"])
	assert.Equal(t, "USER", out["role"])
	assert.NotEmpty(t, out["token"])

	resp, data = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ana", "password": "otro-secreto",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "USERNAME_EXISTS", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ana", "password": "secreto1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ana", "password": "mal",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "x", "password": "secreto1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuth_RegisterPasswordSuperaLimiteBcrypt(t *testing.T) {
	app := newTestServer(t, nil)

	resp, data := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ana", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))
	assert.Equal(t, "VALIDATION", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ana", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIDMalFormado_Retorna404(t *testing.T) {
	app := newTestServer(t, nil)
	tok := bearer(t, "ADMIN")
	_, warehouseID := createPair(t, app, tok)

	resp, data := call(t, app, http.MethodGet, "/api/products/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(data))
	assert.Equal(t, "NOT_FOUND", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/inventory", tok, map[string]any{
		"productId": "abc", "warehouseId": warehouseID, "quantity": 5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodPost, "/api/purchase-orders/abc/fulfill", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodGet, "/api/inventory-movements?productId=abc", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.EqualValues(t, 0, decode(t, data)["total"])
}

func TestAuth_RateLimited(t *testing.T) {
	limiter := &fakeLimiter{allowed: 2}
	app := newTestServer(t, limiter)
	body := map[string]string{"username": "nadie", "password": "secreto1"}

	for i := 0; i < 2; i++ {
		resp, _ := call(t, app, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, data := call(t, app, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decode(t, data)["code"])
	assert.Equal(t, "31", resp.Header.Get("Retry-After"))
}

func TestProducts_CRUD(t *testing.T) {
	app := newTestServer(t, nil)
	tok := bearer(t, "USER")

	resp, _ := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	productID, _ := createPair(t, app, tok)

	resp, data := call(t, app, http.MethodPost, "/api/products", tok, map[string]any{
		"name": "Laptop", "sku": "OTRO", "price": "1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodGet, "/api/products/"+productID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10", decode(t, data)["price"])

	resp, data = call(t, app, http.MethodPut, "/api/products/"+productID, tok, map[string]any{"price": "12.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "12.5", decode(t, data)["price"])

	resp, data = call(t, app, http.MethodGet, "/api/products", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, data)["total"])

	resp, _ = call(t, app, http.MethodDelete, "/api/products/"+productID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/products/"+productID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, data)["code"])
}

func TestInventory_LowStockAlertAndResolve(t *testing.T) {
	app := newTestServer(t, nil)
	tok := bearer(t, "USER")
	productID, warehouseID := createPair(t, app, tok)

	resp, data := call(t, app, http.MethodPost, "/api/inventory", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	inv := decode(t, data)
	assert.EqualValues(t, 10, inv["reorderThreshold"])
	assert.Equal(t, "Laptop", inv["productName"])

	resp, _ = call(t, app, http.MethodPost, "/api/inventory", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "quantity": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/stock-alerts", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, data)
	require.EqualValues(t, 1, list["total"])
	alert := list["items"].([]any)[0].(map[string]any)
	assert.Equal(t, inv["id"], alert["inventoryId"])
	assert.EqualValues(t, 3, alert["quantity"])

	resp, data = call(t, app, http.MethodPost, "/api/stock-alerts/"+alert["id"].(string)+"/resolve", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, data)["resolved"])

	resp, data = call(t, app, http.MethodGet, "/api/stock-alerts", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, decode(t, data)["total"])
}

func TestMovements_RecordAndInsufficientStock(t *testing.T) {
	app := newTestServer(t, nil)
	tok := bearer(t, "USER")
	productID, warehouseID := createPair(t, app, tok)

	resp, data := call(t, app, http.MethodPost, "/api/inventory-movements", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "type": "INBOUND", "quantity": 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodPost, "/api/inventory-movements", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "type": "OUTBOUND", "quantity": 25,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/inventory-movements", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "type": "OUTBOUND", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.EqualValues(t, -5, decode(t, data)["quantity"])

	resp, data = call(t, app, http.MethodGet, "/api/inventory-movements?productId="+productID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, decode(t, data)["total"])
}

func TestPurchaseOrders_FulfillFlow(t *testing.T) {
	app := newTestServer(t, nil)
	tok := bearer(t, "USER")
	productID, warehouseID := createPair(t, app, tok)

	resp, data := call(t, app, http.MethodPost, "/api/inventory", tok, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	invID := decode(t, data)["id"].(string)

	resp, data = call(t, app, http.MethodPost, "/api/purchase-orders", tok, map[string]any{
		"supplierName": "ACME", "productName": "Laptop", "warehouseName": "Central", "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	po := decode(t, data)
	assert.Equal(t, "PENDING", po["status"])
	assert.Equal(t, testUserID, po["userId"])
	poID := po["id"].(string)

	resp, data = call(t, app, http.MethodPost, "/api/purchase-orders/"+poID+"/fulfill", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	po = decode(t, data)
	assert.Equal(t, "RECEIVED", po["status"])
	assert.Equal(t, testUsername, po["receivedBy"])
	assert.NotEmpty(t, po["receivedAt"])

	resp, data = call(t, app, http.MethodGet, "/api/inventory/"+invID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 15, decode(t, data)["quantity"])

	resp, data = call(t, app, http.MethodPost, "/api/purchase-orders/"+poID+"/fulfill", tok, map[string]string{"receivedBy": "otro"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_FULFILLED", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/purchase-orders", tok, map[string]any{
		"supplierName": "ACME", "productName": "No existe", "warehouseName": "Central", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReports_RoleGateAndFormats(t *testing.T) {
	app := newTestServer(t, nil)
	admin := bearer(t, "ADMIN")
	productID, warehouseID := createPair(t, app, admin)

	resp, data := call(t, app, http.MethodPost, "/api/inventory-movements", admin, map[string]any{
		"productId": productID, "warehouseId": warehouseID, "type": "INBOUND", "quantity": 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodGet, "/api/reports/stock-valuation", bearer(t, "USER"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodGet, "/api/reports/stock-valuation", bearer(t, "MANAGER"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 20, rows[0]["quantityOnHand"])
	assert.Equal(t, "200", rows[0]["totalValue"])

	resp, data = call(t, app, http.MethodGet, "/api/reports/stock-valuation?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-valuation.csv")
	assert.True(t, strings.HasPrefix(string(data), "productId,"))

	resp, _ = call(t, app, http.MethodGet, "/api/reports/stock-valuation?format=xml", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stock-valuation?format=xml", nil)
	req.Header.Set("Authorization", admin)
	req.Header.Set("If-None-Match", etag)
	notModified, err := app.Test(req, -1)
	require.NoError(t, err)
	defer notModified.Body.Close()
	assert.Equal(t, http.StatusNotModified, notModified.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/reports/stock-valuation?format=xlsx", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/reports/inventory-turnover", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/reports/inventory-trends?startDate=2024-13-01&endDate=2024-01-02", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	today := time.Now().Format("2006-01-02")
	resp, data = call(t, app, http.MethodGet, "/api/reports/inventory-trends?startDate="+today+"&endDate="+today, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	rows = nil
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 20, rows[0]["quantityOnHand"])
}
