package api

import "github.com/RoyceAzure/lab/storefront/internal/api/handler"

type Server struct {
	ProductHandler  *handler.ProductHandler
	CheckoutHandler *handler.CheckoutHandler
	WebhookHandler  *handler.WebhookHandler
	AdminHandler    *handler.AdminHandler
	AuthHandler     *handler.AuthHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	checkoutHandler *handler.CheckoutHandler,
	webhookHandler *handler.WebhookHandler,
	adminHandler *handler.AdminHandler,
	authHandler *handler.AuthHandler,
) *Server {
	return &Server{
		ProductHandler:  productHandler,
		CheckoutHandler: checkoutHandler,
		WebhookHandler:  webhookHandler,
		AdminHandler:    adminHandler,
		AuthHandler:     authHandler,
	}
}
