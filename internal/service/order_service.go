package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotExist = errors.New("order is not exist")
)

type StoreStats struct {
	OrderCount     int64           `json:"order_count"`
	PaidOrderCount int64           `json:"paid_order_count"`
	RevenueCents   int64           `json:"revenue_cents"`
	Revenue        decimal.Decimal `json:"revenue"`
}

type IOrderService interface {
	ConfirmPayment(ctx context.Context, orderID, paymentRef string) (bool, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)
	GetStoreStats(ctx context.Context) (*StoreStats, error)
}

type OrderService struct {
	orderRepo     db.IOrderRepository
	eventProducer producer.IOrderEventProducer
	logger        *zerolog.Logger
}

// eventProducer 允許為nil，沒接kafka時付款確認照常運作
func NewOrderService(orderRepo db.IOrderRepository, eventProducer producer.IOrderEventProducer, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		eventProducer: eventProducer,
		logger:        logger,
	}
}

// ConfirmPayment 冪等的付款確認
// 狀態轉移跟扣庫存整包委派給repo在單一交易內完成，
// applied=false 代表查無訂單或重複投遞，屬正常no-op
func (o *OrderService) ConfirmPayment(ctx context.Context, orderID, paymentRef string) (bool, error) {
	applied, err := o.orderRepo.FinalizePayment(ctx, orderID, paymentRef)
	if err != nil {
		return false, err
	}
	if !applied {
		if o.logger != nil {
			o.logger.Info().Str("order_id", orderID).Msg("payment event ignored: order missing or already paid")
		}
		return false, nil
	}

	o.publishOrderPaid(ctx, orderID, paymentRef)
	return true, nil
}

// 事件發布是best-effort，失敗只記log不影響已commit的交易
func (o *OrderService) publishOrderPaid(ctx context.Context, orderID, paymentRef string) {
	if o.eventProducer == nil {
		return
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if o.logger != nil {
			o.logger.Error().Err(err).Str("order_id", orderID).Msg("load order for paid event failed")
		}
		return
	}

	event := producer.OrderPaidEvent{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		PaymentRef: paymentRef,
		TotalCents: order.TotalCents,
		PaidAt:     time.Now().UTC(),
	}
	if err := o.eventProducer.ProduceOrderPaidEvent(ctx, event); err != nil && o.logger != nil {
		o.logger.Error().Err(err).Str("order_id", orderID).Msg("produce order paid event failed")
	}
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotExist
		}
		return nil, err
	}
	return order, nil
}

func (o *OrderService) GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByCustomerID(ctx, customerID)
}

func (o *OrderService) GetStoreStats(ctx context.Context) (*StoreStats, error) {
	orderCount, err := o.orderRepo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	paidCount, err := o.orderRepo.CountOrdersByStatus(ctx, model.OrderStatusPaid)
	if err != nil {
		return nil, err
	}
	revenueCents, err := o.orderRepo.SumPaidTotalCents(ctx)
	if err != nil {
		return nil, err
	}

	return &StoreStats{
		OrderCount:     orderCount,
		PaidOrderCount: paidCount,
		RevenueCents:   revenueCents,
		// cents轉主要貨幣單位，只在報表輸出使用decimal
		Revenue: decimal.NewFromInt(revenueCents).Div(decimal.NewFromInt(100)),
	}, nil
}
