package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/di"
	"shop_backend/internal/app/router"
	authadapters "shop_backend/internal/feature/auth/adapters"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	cataloghandler "shop_backend/internal/feature/catalog/transport/handler"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	orderadapters "shop_backend/internal/feature/orders/adapters"
	orderhandler "shop_backend/internal/feature/orders/transport/handler"
	orderusecase "shop_backend/internal/feature/orders/usecase"
	infradb "shop_backend/internal/platform/db"
	jwtmw "shop_backend/internal/platform/jwt"
	infraredis "shop_backend/internal/platform/redis"
	"shop_backend/internal/shared/ratelimiter"
)

// tokenTTL matches the storefront's 7 day sessions.
const tokenTTL = 7 * 24 * time.Hour

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	productStore := di.NewProductStore(db, rdb)
	orderRepo := orderadapters.NewOrderMySQL(db)

	// Usecase
	tokens := jwtmw.NewGenerator(secret, tokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	catalogUC := catalogusecase.NewCatalogUsecase(productStore)
	orderUC := orderusecase.NewOrderUsecase(orderRepo, productStore)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	productH := cataloghandler.NewProductHandler(catalogUC)
	orderH := orderhandler.NewOrderHandler(orderUC)

	// 認証エンドポイントのブルートフォース対策
	loginLimiter := ratelimiter.New(10, time.Minute)

	// ルータ生成
	router := router.NewRouter(authH, productH, orderH, userRepo, loginLimiter)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
