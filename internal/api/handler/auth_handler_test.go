package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/stretchr/testify/require"
)

type fakeCustomerService struct {
	customers map[string]*model.Customer
}

func (f *fakeCustomerService) Signup(ctx context.Context, name, email, password string) (*model.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerService) Login(ctx context.Context, email, password string) (*model.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	if customer, ok := f.customers[customerID]; ok {
		return customer, nil
	}
	return nil, nil
}

func newTestAuthHandler(orderService *fakeOrderService) *AuthHandler {
	return NewAuthHandler(
		&fakeCustomerService{customers: map[string]*model.Customer{}},
		orderService,
		auth.NewJWTMaker("0123456789abcdef0123456789abcdef"),
	)
}

func getMyOrders(h *AuthHandler, principal *model.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me/orders", nil)
	if principal != nil {
		req = req.WithContext(context.WithValue(req.Context(), constants.PrincipalKey, principal))
	}
	rec := httptest.NewRecorder()
	h.MyOrders(rec, req)
	return rec
}

func TestMyOrdersReturnsOwnOrders(t *testing.T) {
	orderService := &fakeOrderService{
		customerOrders: map[string][]model.Order{
			"cust-1": {
				{OrderID: "order-1", CustomerID: "cust-1", TotalCents: 2000, Status: model.OrderStatusPaid},
				{OrderID: "order-2", CustomerID: "cust-1", TotalCents: 500, Status: model.OrderStatusPending},
			},
			"cust-2": {
				{OrderID: "order-3", CustomerID: "cust-2", TotalCents: 9000},
			},
		},
	}
	h := newTestAuthHandler(orderService)

	rec := getMyOrders(h, &model.Principal{CustomerID: "cust-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Orders []model.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// 只回自己的訂單
	require.Len(t, body.Orders, 2)
	require.Equal(t, "order-1", body.Orders[0].OrderID)
	require.Equal(t, "cust-1", body.Orders[1].CustomerID)
}

func TestMyOrdersUnauthenticated(t *testing.T) {
	h := newTestAuthHandler(&fakeOrderService{})

	rec := getMyOrders(h, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthenticated", decodeMessage(t, rec))
}
