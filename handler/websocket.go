package handler

import (
	"context"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// OrderEvents streams order status changes to the admin dashboard. Each
// connection gets its own redis subscription; the socket closes when either
// side goes away.
func (h *Handler) OrderEvents() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		defer c.Close()

		pubsub := h.Hub.Subscribe(context.Background())
		if pubsub == nil {
			log.Println("[WS] event hub unavailable")
			return
		}
		defer pubsub.Close()

		// Drain client frames so close/ping handling keeps working. Closing
		// the subscription ends its channel, which unblocks the send loop
		// below as soon as the client goes away.
		go func() {
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					pubsub.Close()
					return
				}
			}
		}()

		for msg := range pubsub.Channel() {
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	})
}
