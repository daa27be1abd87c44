package router

import (
	"github.com/gin-gonic/gin"

	authentity "shop_backend/internal/feature/auth/domain/entity"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	cataloghandler "shop_backend/internal/feature/catalog/transport/handler"
	orderhandler "shop_backend/internal/feature/orders/transport/handler"
	"shop_backend/internal/platform/http/handler"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/shared/ratelimiter"
)

// NewRouter assembles the route table. The credential endpoints sit behind a
// per-IP throttle; everything else requires a valid bearer token.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	products *cataloghandler.ProductHandler,
	orders *orderhandler.OrderHandler,
	users jwtmw.UserResolver,
	loginLimiter *ratelimiter.Limiter,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", loginLimiter.Middleware(), authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", loginLimiter.Middleware(), authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired(users))
	{
		// アカウント
		auth.GET("/me", authHandler.Me)
		auth.PUT("/me", authHandler.UpdateMe)
		auth.PUT("/me/password", authHandler.ChangePassword)

		// 商品管理と購入画面
		// 出品はメール認証済みアカウントのみ
		auth.POST("/products", jwtmw.RequireVerified(), products.Create)
		auth.GET("/products", products.ListOwn)
		auth.GET("/products/shop", products.Shop)
		auth.GET("/products/:id", products.Get)
		auth.PUT("/products/:id", products.Update)
		auth.DELETE("/products/:id", products.Delete)

		// 注文
		auth.POST("/orders", orders.Place)
		auth.GET("/orders", orders.List)
		auth.GET("/orders/:id", orders.Get)
		auth.PUT("/orders/:id/status", orders.UpdateStatus)

		// 管理者専用
		admin := auth.Group("/admin")
		admin.Use(jwtmw.RequireRole(authentity.RoleAdmin))
		{
			admin.GET("/users", authHandler.ListUsers)
		}
	}

	return r
}
