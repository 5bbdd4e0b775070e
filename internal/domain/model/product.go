package model

type Product struct {
	ProductID   string         `gorm:"primaryKey;type:varchar(255)" json:"product_id"`
	Title       string         `gorm:"not null;type:varchar(255)" json:"title"`
	Slug        string         `gorm:"unique;not null;type:varchar(255)" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	Currency    string         `gorm:"not null;type:varchar(10);default:'eur'" json:"currency"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Variants    []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	Categories  []Category     `gorm:"many2many:product_categories" json:"categories"`
	BaseModel
}

type ProductImage struct {
	ImageID   uint   `gorm:"primaryKey;autoIncrement" json:"image_id"`
	ProductID string `gorm:"not null;type:varchar(255);index" json:"product_id"` // 外鍵，關聯到 Product
	URL       string `gorm:"not null;type:varchar(512)" json:"url"`
	Alt       string `gorm:"type:varchar(255)" json:"alt"`
	PublicID  string `gorm:"type:varchar(255)" json:"public_id"`
	Position  int    `gorm:"not null;default:0" json:"position"`
	BaseModel
}

// 商品變體(尺寸/款式)，各自持有庫存與價差
// 庫存不可為負，扣減一律走條件式更新
type Variant struct {
	VariantID       string `gorm:"primaryKey;type:varchar(255)" json:"variant_id"`
	ProductID       string `gorm:"not null;type:varchar(255);index" json:"product_id"` // 外鍵，關聯到 Product
	Name            string `gorm:"not null;type:varchar(255)" json:"name"`
	Stock           uint   `gorm:"not null;default:0" json:"stock"`
	PriceDeltaCents int64  `gorm:"not null;default:0" json:"price_delta_cents"`
	BaseModel
}

type Category struct {
	CategoryID string `gorm:"primaryKey;type:varchar(255)" json:"category_id"`
	Name       string `gorm:"not null;type:varchar(255)" json:"name"`
	Slug       string `gorm:"unique;not null;type:varchar(255)" json:"slug"`
	BaseModel
}
