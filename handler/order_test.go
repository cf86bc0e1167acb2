package handler_test

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

	"bipang_apung/handler"
	"bipang_apung/model"
	"bipang_apung/order"
	"bipang_apung/router"
	"bipang_apung/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	orders map[string]*model.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*model.Order{}}
}

func (f *fakeStore) Create(ctx context.Context, o *model.Order) error {
	f.orders[o.OrderID] = o
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeStore) List(ctx context.Context, phone string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if phone == "" || o.Phone == phone {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, orderID string, fields map[string]any) error {
	o, ok := f.orders[orderID]
	if !ok {
		return store.ErrOrderNotFound
	}
	if s, ok := fields["status"]; ok {
		o.Status = s.(model.OrderStatus)
	}
	if s, ok := fields["gateway_status"]; ok {
		o.GatewayStatus = s.(string)
	}
	if s, ok := fields["fraud_status"]; ok {
		o.FraudStatus = s.(string)
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, orderID string) error {
	if _, ok := f.orders[orderID]; !ok {
		return store.ErrOrderNotFound
	}
	delete(f.orders, orderID)
	return nil
}

func (f *fakeStore) ListStale(ctx context.Context, statuses []model.OrderStatus, before time.Time) ([]model.Order, error) {
	return nil, nil
}

func (f *fakeStore) PasswordHash(ctx context.Context) (string, error) {
	return "", store.ErrAdminNotFound
}

type fakeGateway struct{}

func (fakeGateway) CreateTransaction(ctx context.Context, o *model.Order) (*model.GatewayCharge, error) {
	return &model.GatewayCharge{OrderID: o.OrderID, RedirectURL: "https://app.midtrans.com/snap/pay"}, nil
}

func (fakeGateway) TransactionStatus(ctx context.Context, orderID string) (*model.GatewayTransaction, error) {
	return &model.GatewayTransaction{TransactionStatus: "pending"}, nil
}

func (fakeGateway) VerifyNotification(n *model.GatewayNotification) bool {
	return n.SignatureKey == "valid"
}

func newApp(t *testing.T) (*fiber.App, *fakeStore) {
	t.Helper()
	st := newFakeStore()
	svc := order.NewService(st, fakeGateway{}, nil, nil, "https://bipangapung.vercel.app")
	h := handler.New(svc, st, nil, "https://bipangapung.vercel.app")

	app := fiber.New()
	router.SetupRoutes(app, h)
	return app, st
}

func TestCreateOrderEndpoint(t *testing.T) {
	app, st := newApp(t)

	body := map[string]any{
		"name":           "Budi",
		"phone":          "08123456789",
		"address":        "Jl. Mawar 1",
		"date":           "2026-09-01",
		"deliveryMethod": "Motor (Rp 12.000)",
		"paymentMethod":  model.PaymentCOD,
		"items": []map[string]any{
			{"id": "adhoc-1", "name": "Paket A", "amount": 40000, "quantity": 1},
			{"id": "adhoc-2", "name": "Paket B", "amount": 12000, "quantity": 2},
		},
	}
	resp := doJSON(t, app, "POST", "/api/v1/orders", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}
	decode(t, resp.Body, &out)
	assert.True(t, out.Success)
	assert.True(t, strings.HasPrefix(out.OrderID, "BA-"))

	stored := st.orders[out.OrderID]
	require.NotNil(t, stored)
	assert.Equal(t, int64(76000), stored.TotalAmount)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestCreateOrderEndpointRejectsEmptyItems(t *testing.T) {
	app, _ := newApp(t)

	body := map[string]any{
		"name":          "Budi",
		"phone":         "08123456789",
		"date":          "2026-09-01",
		"paymentMethod": model.PaymentCOD,
		"items":         []map[string]any{},
	}
	resp := doJSON(t, app, "POST", "/api/v1/orders", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotificationEndpoint(t *testing.T) {
	app, st := newApp(t)
	st.orders["BA-1"] = &model.Order{
		OrderID:       "BA-1",
		PaymentMethod: model.PaymentOnline,
		Status:        model.StatusPending,
	}

	// Tampered signature: rejected, order untouched.
	resp := doJSON(t, app, "POST", "/api/v1/payment/notification", map[string]any{
		"order_id":           "BA-1",
		"transaction_status": "settlement",
		"signature_key":      "tampered",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, st.orders["BA-1"].GatewayStatus)

	// Valid signature applies the mutation.
	resp = doJSON(t, app, "POST", "/api/v1/payment/notification", map[string]any{
		"order_id":           "BA-1",
		"transaction_status": "settlement",
		"signature_key":      "valid",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "settlement", st.orders["BA-1"].GatewayStatus)
	assert.Equal(t, model.StatusPending, st.orders["BA-1"].Status)
}

func TestGetMenuEndpoint(t *testing.T) {
	app, _ := newApp(t)
	req := httptest.NewRequest("GET", "/api/v1/menu", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Status string           `json:"status"`
		Data   []map[string]any `json:"data"`
	}
	decode(t, resp.Body, &out)
	assert.Equal(t, "success", out.Status)
	assert.NotEmpty(t, out.Data)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	app, _ := newApp(t)
	req := httptest.NewRequest("GET", "/api/v1/orders/BA-missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, r io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}
