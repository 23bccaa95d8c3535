package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"shophub-order-service/internal/config"
	handler "shophub-order-service/internal/controllers/http"
	"shophub-order-service/internal/infra/midtrans"
	mmysql "shophub-order-service/internal/infra/mysql"
	"shophub-order-service/internal/infra/rabbitmq"
	mysqlrepo "shophub-order-service/internal/repository/mysql"
	"shophub-order-service/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	db, err := mmysql.New(cfg.MySQLDSN)
	if err != nil {
		logrus.WithError(err).Fatal("db: connect")
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	notificationRepo := mysqlrepo.NewNotificationRepository(db)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		logrus.WithError(err).Fatal("failed to init publisher")
	}
	defer publisher.Close()

	gateway := midtrans.NewClient(cfg.MidtransServerKey, cfg.MidtransProduction, cfg.GatewayTimeout)

	checkout := services.NewCheckoutService(orderRepo, productRepo, publisher)
	payments := services.NewPaymentService(orderRepo, notificationRepo, gateway, publisher)
	orders := services.NewOrderService(orderRepo, publisher)

	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 500 * time.Millisecond,
	})

	h := handler.NewHandler(checkout, payments, orders, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	h.RegisterRoutes(r)

	logrus.WithField("port", cfg.Port).Info("starting order service")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server run")
	}
}
