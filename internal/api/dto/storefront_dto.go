package dto

// wire格式沿用前台既有約定: cartItems/productId為駝峰, 金額欄位為snake
type CartItemDTO struct {
	ProductID  string  `json:"productId"`
	VariantID  *string `json:"variantId,omitempty"`
	Title      string  `json:"title"`
	PriceCents int64   `json:"price_cents"`
	Quantity   int     `json:"quantity"`
}

type CheckoutRequestDTO struct {
	CartItems []CartItemDTO `json:"cartItems"`
	Email     string        `json:"email,omitempty"`
}

type CheckoutResponseDTO struct {
	URL string `json:"url"`
}

type WebhookResponseDTO struct {
	Received bool `json:"received"`
}

type CreateProductImageDTO struct {
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	PublicID string `json:"publicId"`
}

type CreateProductVariantDTO struct {
	Name            string `json:"name"`
	Stock           uint   `json:"stock"`
	PriceDeltaCents int64  `json:"price_delta_cents"`
}

type CreateProductRequestDTO struct {
	Title       string                    `json:"title"`
	Slug        string                    `json:"slug"`
	Description string                    `json:"description"`
	PriceCents  int64                     `json:"price_cents"`
	CategoryID  string                    `json:"categoryId"`
	Images      []CreateProductImageDTO   `json:"images"`
	Variants    []CreateProductVariantDTO `json:"variants"`
}

type SignupRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CustomerDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

type LoginResponseDTO struct {
	AccessToken TokenInfo   `json:"access_token"`
	Customer    CustomerDTO `json:"customer"`
}
