package handler

import (
	"errors"
	"fmt"
	"log"

	"bipang_apung/model"
	"bipang_apung/order"
	"bipang_apung/store"
	"bipang_apung/utils"

	"github.com/gofiber/fiber/v2"
)

// Notification receives the Midtrans server-to-server webhook. The response
// body is the {status: ok|fail} shape Midtrans retries on.
func (h *Handler) Notification(c *fiber.Ctx) error {
	var n model.GatewayNotification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Malformed notification"})
	}

	res, err := h.Orders.ApplyNotification(c.Context(), &n)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidSignature):
			log.Printf("[WEBHOOK] %s: invalid signature", n.OrderID)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid signature"})
		case errors.Is(err, store.ErrOrderNotFound):
			log.Printf("[WEBHOOK] %s: order not found", n.OrderID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail", "message": "Order not found"})
		}
		log.Printf("[WEBHOOK] %s: %v", n.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Internal server error"})
	}

	log.Printf("[WEBHOOK] %s -> %s", n.OrderID, res.Status)
	return c.JSON(fiber.Map{"status": "ok"})
}

// Recheck pulls fresh transaction status from the gateway. Gateway failures
// answer with the stored status and verified=false instead of an error, so
// the lookup page never blocks on a flaky gateway.
func (h *Handler) Recheck(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order ID is required", nil)
	}

	res, verified, err := h.Orders.Recheck(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order status", err)
	}

	resp := fiber.Map{
		"success":    true,
		"resolution": res,
		"verified":   verified,
	}
	if !verified {
		resp["message"] = "Tidak dapat memverifikasi pembayaran, menampilkan status terakhir"
	}
	return c.JSON(resp)
}

// Finish is where Midtrans redirects the customer after the hosted payment
// page. It forwards to the public status page with the stored status.
func (h *Handler) Finish(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return c.Redirect(h.BaseURL + "/?error=missing_order_id")
	}

	st := model.StatusPending
	if _, res, err := h.Orders.Get(c.Context(), orderID); err == nil {
		st = res.Status
	} else {
		log.Printf("[FINISH] %s: %v", orderID, err)
	}

	return c.Redirect(fmt.Sprintf("%s/paymentStatus/%s?status=%s", h.BaseURL, orderID, st))
}
