package model

// Cart 購物車由客戶端持有，結帳時整包帶進來，不落地server
type Cart struct {
	Email string     `json:"email"`
	Items []CartItem `json:"items"`
}

type CartItem struct {
	ProductID  string  `json:"product_id"`
	VariantID  *string `json:"variant_id"`
	Title      string  `json:"title"`
	PriceCents int64   `json:"price_cents"`
	Quantity   int     `json:"quantity"`
}
