package main

import (
	"log"

	"bipang_apung/config"
	"bipang_apung/database"
	"bipang_apung/events"
	"bipang_apung/gateway"
	"bipang_apung/handler"
	"bipang_apung/order"
	"bipang_apung/router"
	"bipang_apung/store"
	"bipang_apung/wa"
	"bipang_apung/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})
	hub := events.NewHub(rdb)

	st := store.NewGormStore(db)
	gw := gateway.NewMidtrans(
		config.Config("MIDTRANS_SERVER_KEY"),
		config.Config("MIDTRANS_CLIENT_KEY"),
		config.Config("MIDTRANS_IS_PRODUCTION") == "true",
	)
	notifier := wa.NewClient(config.Config("DRIPSENDER_API_KEY"))
	baseURL := config.ConfigOr("APP_URL", "https://bipangapung.vercel.app")

	svc := order.NewService(st, gw, notifier, hub, baseURL)
	h := handler.New(svc, st, hub, baseURL)
	router.SetupRoutes(app, h)

	sweeper, err := worker.StartPaymentSweep(svc, st)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = sweeper.Shutdown() }()

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}
