package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bipang_apung/gateway"
	"bipang_apung/model"
	"bipang_apung/order"
	"bipang_apung/store"
	"bipang_apung/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder handles checkout for both COD and online payment.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input, _ := c.Locals("inputCreateOrder").(model.CreateOrderInput)

	o, err := h.Orders.Create(c.Context(), &input)
	if err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Gagal menyimpan pesanan", err)
	}

	resp := fiber.Map{
		"success": true,
		"orderId": o.OrderID,
	}
	if o.PaymentURL != "" {
		resp["paymentUrl"] = o.PaymentURL
	} else {
		resp["message"] = "COD order created successfully"
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetOrder returns an order plus its resolved canonical status. Public: the
// lookup page only needs the order id.
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order ID is required", nil)
	}

	o, res, err := h.Orders.Get(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch order", err)
	}

	return c.JSON(fiber.Map{
		"order":      o,
		"resolution": res,
	})
}

// ListOrders returns every order newest first, optionally filtered by
// customer phone number. Admin only.
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.Context(), c.Query("phone"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// UpdateOrderStatus is the admin override path.
func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	input, _ := c.Locals("inputUpdateOrderStatus").(model.UpdateOrderStatusInput)

	res, err := h.Orders.AdminOverride(c.Context(), orderID, model.OrderStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Status tidak dikenal", err)
		case errors.Is(err, store.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order status", err)
	}

	return c.JSON(fiber.Map{
		"message":    "Order status updated successfully",
		"resolution": res,
	})
}

// DeleteOrder hard-deletes an order. Admin only.
func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if err := h.Orders.Delete(c.Context(), orderID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete order", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Order deleted successfully")
}

// ExportOrders streams the order book as CSV for the admin dashboard.
func (h *Handler) ExportOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.Context(), "")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{"order_id", "name", "phone", "address", "delivery_method", "payment_method", "items", "subtotal", "delivery_fee", "total", "status", "created_at"})
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
		}
		w.Write([]string{
			o.OrderID,
			o.Name,
			o.Phone,
			o.Address,
			o.DeliveryMethod,
			o.PaymentMethod,
			strings.Join(names, "; "),
			strconv.FormatInt(o.ItemsSubtotal, 10),
			strconv.FormatInt(o.DeliveryFee, 10),
			strconv.FormatInt(o.TotalAmount, 10),
			string(o.Status),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export orders", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.SendString(sb.String())
}

// OrderQR renders a QR code pointing at the public order-lookup page, shown
// at pickup so staff can pull the order up by scanning.
func (h *Handler) OrderQR(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if _, _, err := h.Orders.Get(c.Context(), orderID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch order", err)
	}

	png, err := utils.GenerateQRCode(fmt.Sprintf("%s/cekorder/%s", h.BaseURL, orderID), 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
