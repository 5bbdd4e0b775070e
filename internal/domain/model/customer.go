package model

type Customer struct {
	CustomerID     string    `gorm:"primaryKey;type:varchar(255)" json:"customer_id"`
	Email          string    `gorm:"unique;not null;type:varchar(255)" json:"email"` // email 唯一
	Name           string    `gorm:"type:varchar(255)" json:"name"`
	HashedPassword string    `gorm:"not null;type:varchar(255)" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"is_admin"`
	Addresses      []Address `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"addresses"`
	Orders         []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	BaseModel
}

type Address struct {
	AddressID  string `gorm:"primaryKey;type:varchar(255)" json:"address_id"`
	CustomerID string `gorm:"not null;type:varchar(255);index" json:"customer_id"` // 外鍵，關聯到 Customer
	Line1      string `gorm:"type:varchar(255)" json:"line1"`
	Line2      string `gorm:"type:varchar(255)" json:"line2"`
	City       string `gorm:"type:varchar(255)" json:"city"`
	PostalCode string `gorm:"type:varchar(50)" json:"postal_code"`
	Country    string `gorm:"type:varchar(50)" json:"country"`
	BaseModel
}

// Principal 請求邊界解析完成的身份，handler 往下傳遞，核心邏輯不碰 token
type Principal struct {
	CustomerID string
	Email      string
	IsAdmin    bool
}
