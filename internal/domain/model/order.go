package model

const (
	OrderStatusPending   uint = 0 // 待付款
	OrderStatusPaid      uint = 1 // 已付款
	OrderStatusCancelled uint = 2 // 已取消
	OrderStatusFailed    uint = 3 // 付款失敗
)

// 訂單金額一律使用整數最小貨幣單位(cents)，避免浮點數誤差
type Order struct {
	OrderID           string      `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	CustomerID        string      `gorm:"not null;type:varchar(255);index" json:"customer_id"` // 外鍵，關聯到 Customer
	TotalCents        int64       `gorm:"not null" json:"total_cents"`
	Status            uint        `gorm:"not null;default:0" json:"status"`
	PaymentRef        *string     `gorm:"type:varchar(255)" json:"payment_ref"` // 付款完成前為 null，同時當作冪等標記
	ShippingAddressID string      `gorm:"type:varchar(255)" json:"shipping_address_id"`
	BillingAddressID  string      `gorm:"type:varchar(255)" json:"billing_address_id"`
	OrderItems        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	BaseModel
}

// 下單當下的單價會被固定住，不隨商品後續改價變動
type OrderItem struct {
	OrderID    string  `gorm:"primaryKey;type:varchar(255)" json:"order_id"`   // 外鍵，關聯到 Order
	ProductID  string  `gorm:"primaryKey;type:varchar(255)" json:"product_id"` // 外鍵，關聯到 Product
	VariantID  *string `gorm:"type:varchar(255)" json:"variant_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	PriceCents int64   `gorm:"not null" json:"price_cents"`
	BaseModel
}
