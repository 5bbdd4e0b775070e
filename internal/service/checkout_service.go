package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/payment"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidCartItem  = errors.New("cart item is invalid")
	ErrNoCustomer       = errors.New("neither principal nor guest email supplied")
	ErrCustomerNotExist = errors.New("customer is not exist")
	ErrPaymentSession   = errors.New("create payment session failed")
)

type ICheckoutService interface {
	Checkout(ctx context.Context, principal *model.Principal, guestEmail string, items []model.CartItem) (string, error)
}

// CheckoutService 結帳流程的編排:
// 解析客戶 -> 解析地址 -> server端計算總額 -> 建立PENDING訂單 -> 開付款session
type CheckoutService struct {
	customerRepo   db.ICustomerRepository
	orderRepo      db.IOrderRepository
	sessionCreator payment.ISessionCreator
	currency       string
	successURL     string
	cancelURL      string
}

func NewCheckoutService(
	customerRepo db.ICustomerRepository,
	orderRepo db.IOrderRepository,
	sessionCreator payment.ISessionCreator,
	currency, successURL, cancelURL string,
) *CheckoutService {
	if currency == "" {
		currency = "eur"
	}
	return &CheckoutService{
		customerRepo:   customerRepo,
		orderRepo:      orderRepo,
		sessionCreator: sessionCreator,
		currency:       currency,
		successURL:     successURL,
		cancelURL:      cancelURL,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, principal *model.Principal, guestEmail string, items []model.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 || item.PriceCents < 0 {
			return "", ErrInvalidCartItem
		}
	}

	customer, err := s.resolveCustomer(ctx, principal, guestEmail)
	if err != nil {
		return "", err
	}

	address, err := s.resolveAddress(ctx, customer.CustomerID)
	if err != nil {
		return "", err
	}

	// 總額只信server端計算，客戶端傳來的任何總額一律不採用
	var totalCents int64
	orderID := uuid.NewString()
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		totalCents += item.PriceCents * int64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			OrderID:    orderID,
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	order := &model.Order{
		OrderID:           orderID,
		CustomerID:        customer.CustomerID,
		TotalCents:        totalCents,
		Status:            model.OrderStatusPending,
		ShippingAddressID: address.AddressID,
		BillingAddressID:  address.AddressID,
		OrderItems:        orderItems,
	}
	if err := s.orderRepo.CreateOrderWithItems(ctx, order); err != nil {
		return "", err
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:            item.Title,
			UnitAmountCents: item.PriceCents,
			Quantity:        int64(item.Quantity),
		})
	}

	url, err := s.sessionCreator.CreateSession(ctx, payment.CreateSessionParams{
		OrderID:    orderID,
		Currency:   s.currency,
		LineItems:  lineItems,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return "", errors.Join(ErrPaymentSession, err)
	}
	return url, nil
}

// resolveCustomer 已登入就載入既有客戶，訪客用email upsert
func (s *CheckoutService) resolveCustomer(ctx context.Context, principal *model.Principal, guestEmail string) (*model.Customer, error) {
	if principal != nil {
		customer, err := s.customerRepo.GetCustomerByID(ctx, principal.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotExist
			}
			return nil, err
		}
		return customer, nil
	}

	if guestEmail == "" {
		return nil, ErrNoCustomer
	}

	// 訪客帳號給一組隨機佔位密碼，永遠無法用來登入
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.UpsertCustomerByEmail(ctx, guestEmail, string(placeholder))
}

// resolveAddress 沿用客戶第一筆地址，沒有就先建佔位地址
func (s *CheckoutService) resolveAddress(ctx context.Context, customerID string) (*model.Address, error) {
	address, err := s.customerRepo.GetFirstAddress(ctx, customerID)
	if err == nil {
		return address, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	placeholder := &model.Address{
		AddressID:  uuid.NewString(),
		CustomerID: customerID,
	}
	if err := s.customerRepo.CreateAddress(ctx, placeholder); err != nil {
		return nil, err
	}
	return placeholder, nil
}
