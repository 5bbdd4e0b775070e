package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrVariantStockNotEnough 變體庫存不足
	ErrVariantStockNotEnough = errors.New("variant stock not enough")
)

type IOrderRepository interface {
	CreateOrderWithItems(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)
	FinalizePayment(ctx context.Context, orderID string, paymentRef string) (bool, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status uint) (int64, error)
	SumPaidTotalCents(ctx context.Context) (int64, error)
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrderWithItems 訂單與明細在同一交易內建立
// gorm 會透過association一併寫入 OrderItems
func (s *OrderRepo) CreateOrderWithItems(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("customer_id = ?", customerID).Find(&orders).Error
	return orders, err
}

// FinalizePayment 付款確認的交易本體
// 冪等的關鍵在條件式UPDATE: 只有payment_ref還是NULL的那一個交易改得動row，
// READ COMMITTED下併發的重複投遞在row lock後重新評估predicate，
// 後到的RowsAffected=0直接走no-op，不會重複扣庫存
//
// 回傳:
//   - applied=false: 查無訂單或已付款(payment_ref已設置)，不做任何寫入
//   - applied=true: 狀態轉移 PENDING->PAID 並逐項扣減變體庫存
//
// 任一項庫存不足回傳 ErrVariantStockNotEnough，整筆交易回滾
func (s *OrderRepo) FinalizePayment(ctx context.Context, orderID string, paymentRef string) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Preload("OrderItems").First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 查無訂單，視為no-op，外部仍回200避免provider無限重送
				return nil
			}
			return err
		}

		// 快速路徑: payment_ref已設置代表已付款過
		if order.PaymentRef != nil {
			return nil
		}

		res := tx.Model(&model.Order{}).
			Where("order_id = ? AND payment_ref IS NULL", orderID).
			Updates(map[string]interface{}{
				"status":      model.OrderStatusPaid,
				"payment_ref": paymentRef,
			})
		if res.Error != nil {
			return res.Error
		}
		// 另一個併發交易已先完成付款
		if res.RowsAffected == 0 {
			return nil
		}

		// 條件式扣庫存，stock不會變負數
		for _, item := range order.OrderItems {
			if item.VariantID == nil {
				continue
			}
			res := tx.Model(&model.Variant{}).
				Where("variant_id = ? AND stock >= ?", *item.VariantID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrVariantStockNotEnough
			}
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (s *OrderRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

func (s *OrderRepo) CountOrdersByStatus(ctx context.Context, status uint) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

// SumPaidTotalCents 已付款訂單的營收加總
func (s *OrderRepo) SumPaidTotalCents(ctx context.Context) (int64, error) {
	var sum int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusPaid).
		Select("COALESCE(SUM(total_cents), 0)").
		Row().
		Scan(&sum)
	return sum, err
}
