package router

import (
	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker auth.ITokenMaker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.PrincipalMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 商品目錄
		r.Get("/products", server.ProductHandler.GetProducts)
		r.Get("/products/{slug}", server.ProductHandler.GetProductBySlug)
		r.Get("/categories", server.ProductHandler.GetCategories)

		// 結帳
		r.Post("/checkout", server.CheckoutHandler.Checkout)

		// 付款provider回調，認證走簽章驗證不走principal
		r.Post("/webhooks/stripe", server.WebhookHandler.HandlePaymentEvent)

		// Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", server.AuthHandler.Signup)
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
			r.With(m.AuthMiddleware).Get("/me/orders", server.AuthHandler.MyOrders)
		})

		// 後台
		r.Route("/admin", func(r chi.Router) {
			r.Use(m.AdminMiddleware)
			r.Post("/products", server.AdminHandler.CreateProduct)
			r.Get("/orders/{orderID}", server.AdminHandler.GetOrder)
			r.Get("/stats", server.AdminHandler.GetStats)
		})
	})

	return r
}
