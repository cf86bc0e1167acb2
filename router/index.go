package router

import (
	"bipang_apung/handler"
	"bipang_apung/middleware"
	"bipang_apung/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)

	v1.Get("/menu", h.GetMenu)

	orders := v1.Group("/orders")
	orders.Post("/", validate.CreateOrder(), h.CreateOrder)
	orders.Get("/export/csv", middleware.Protected(), h.ExportOrders)
	orders.Get("/", middleware.Protected(), h.ListOrders)
	orders.Get("/:orderId", h.GetOrder)
	orders.Get("/:orderId/qr", h.OrderQR)
	orders.Post("/:orderId/recheck", h.Recheck)
	orders.Put("/:orderId/status", middleware.Protected(), validate.UpdateOrderStatus(), h.UpdateOrderStatus)
	orders.Delete("/:orderId", middleware.Protected(), h.DeleteOrder)

	payment := v1.Group("/payment")
	payment.Post("/notification", h.Notification)
	payment.Get("/finish", h.Finish)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/orders", middleware.Protected(), h.OrderEvents())
}
