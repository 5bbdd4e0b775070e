package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (*CheckoutService, *fakeCustomerRepo, *fakeOrderRepo, *fakeSessionCreator) {
	customerRepo := newFakeCustomerRepo()
	orderRepo := newFakeOrderRepo()
	sessions := &fakeSessionCreator{url: "https://pay.example.com/cs_test_123"}
	svc := NewCheckoutService(customerRepo, orderRepo, sessions, "eur",
		"https://shop.example.com/checkout/success", "https://shop.example.com/cart?canceled=true")
	return svc, customerRepo, orderRepo, sessions
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), nil, "a@b.com", nil)

	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutNoPrincipalNoEmail(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), nil, "", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 1},
	})

	require.ErrorIs(t, err, ErrNoCustomer)
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), nil, "a@b.com", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 0},
	})

	require.ErrorIs(t, err, ErrInvalidCartItem)
}

func TestCheckoutGuestCreatesPendingOrder(t *testing.T) {
	svc, customerRepo, orderRepo, sessions := newCheckoutFixture()

	url, err := svc.Checkout(context.Background(), nil, "a@b.com", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 2},
	})

	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com/cs_test_123", url)

	// 訪客客戶已建立，帶佔位密碼
	guest, err := customerRepo.GetCustomerByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, guest.HashedPassword)

	require.Len(t, orderRepo.orders, 1)
	for _, order := range orderRepo.orders {
		require.Equal(t, model.OrderStatusPending, order.Status)
		require.Nil(t, order.PaymentRef)
		require.Equal(t, int64(2000), order.TotalCents)
		require.Len(t, order.OrderItems, 1)
		require.Equal(t, int64(1000), order.OrderItems[0].PriceCents)
		require.Equal(t, 2, order.OrderItems[0].Quantity)

		// session metadata帶內部訂單ID，是webhook對帳的唯一關聯
		require.Equal(t, order.OrderID, sessions.lastParams.OrderID)
	}

	require.Equal(t, 1, sessions.calls)
	require.Len(t, sessions.lastParams.LineItems, 1)
	require.Equal(t, int64(1000), sessions.lastParams.LineItems[0].UnitAmountCents)
	require.Equal(t, int64(2), sessions.lastParams.LineItems[0].Quantity)
}

func TestCheckoutTotalComputedServerSide(t *testing.T) {
	svc, _, orderRepo, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), nil, "a@b.com", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1500, Quantity: 3},
		{ProductID: "p2", Title: "Rug", PriceCents: 250, Quantity: 2},
	})

	require.NoError(t, err)
	for _, order := range orderRepo.orders {
		// 總額 = Σ(單價×數量)，且與明細一致
		var expected int64
		for _, item := range order.OrderItems {
			expected += item.PriceCents * int64(item.Quantity)
		}
		require.Equal(t, expected, order.TotalCents)
		require.Equal(t, int64(1500*3+250*2), order.TotalCents)
	}
}

func TestCheckoutAuthenticatedCustomer(t *testing.T) {
	svc, customerRepo, orderRepo, _ := newCheckoutFixture()
	customerRepo.add(&model.Customer{CustomerID: "cust-1", Email: "me@shop.com"})

	_, err := svc.Checkout(context.Background(), &model.Principal{CustomerID: "cust-1"}, "", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 1},
	})

	require.NoError(t, err)
	for _, order := range orderRepo.orders {
		require.Equal(t, "cust-1", order.CustomerID)
	}
}

func TestCheckoutAuthenticatedCustomerGone(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), &model.Principal{CustomerID: "ghost"}, "", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 1},
	})

	require.ErrorIs(t, err, ErrCustomerNotExist)
}

func TestCheckoutReusesExistingAddress(t *testing.T) {
	svc, customerRepo, orderRepo, _ := newCheckoutFixture()
	customerRepo.add(&model.Customer{CustomerID: "cust-1", Email: "me@shop.com"})
	customerRepo.CreateAddress(context.Background(), &model.Address{AddressID: "addr-1", CustomerID: "cust-1"})

	_, err := svc.Checkout(context.Background(), &model.Principal{CustomerID: "cust-1"}, "", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 1},
	})

	require.NoError(t, err)
	for _, order := range orderRepo.orders {
		require.Equal(t, "addr-1", order.ShippingAddressID)
		require.Equal(t, "addr-1", order.BillingAddressID)
	}
	// 不會另外生佔位地址
	require.Len(t, customerRepo.addresses["cust-1"], 1)
}

func TestCheckoutSessionCreationFails(t *testing.T) {
	svc, _, orderRepo, sessions := newCheckoutFixture()
	sessions.err = errors.New("provider down")

	_, err := svc.Checkout(context.Background(), nil, "a@b.com", []model.CartItem{
		{ProductID: "p1", Title: "Stool", PriceCents: 1000, Quantity: 1},
	})

	require.ErrorIs(t, err, ErrPaymentSession)
	// 訂單留在PENDING，等人工處理或客戶重試
	require.Len(t, orderRepo.orders, 1)
}
