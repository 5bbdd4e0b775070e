package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeProductService struct{}

func (f *fakeProductService) GetProducts(ctx context.Context, page, limit int, categorySlug, sort string) (*service.ProductPage, error) {
	return &service.ProductPage{}, nil
}

func (f *fakeProductService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return nil, service.ErrProductNotExist
}

func (f *fakeProductService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (*model.Product, error) {
	return nil, nil
}

func getAdminOrder(h *AdminHandler, orderID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders/"+orderID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderID", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.GetOrder(rec, req)
	return rec
}

func TestAdminGetOrder(t *testing.T) {
	ref := "pi_123"
	orderService := &fakeOrderService{
		orders: map[string]*model.Order{
			"order-1": {
				OrderID:    "order-1",
				CustomerID: "cust-1",
				TotalCents: 2000,
				Status:     model.OrderStatusPaid,
				PaymentRef: &ref,
				OrderItems: []model.OrderItem{
					{OrderID: "order-1", ProductID: "p1", Quantity: 2, PriceCents: 1000},
				},
			},
		},
	}
	h := NewAdminHandler(&fakeProductService{}, orderService)

	rec := getAdminOrder(h, "order-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "order-1", body.Order.OrderID)
	require.Equal(t, "pi_123", *body.Order.PaymentRef)
	require.Len(t, body.Order.OrderItems, 1)
}

func TestAdminGetOrderNotFound(t *testing.T) {
	h := NewAdminHandler(&fakeProductService{}, &fakeOrderService{})

	rec := getAdminOrder(h, "ghost")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "order not found", decodeMessage(t, rec))
}
