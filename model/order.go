package model

import "time"

// OrderStatus is the canonical status shown by every surface. It is only
// mutated through order.Service.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusUnpaid     OrderStatus = "unpaid"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnpaid, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Payment methods as the storefront sends them.
const (
	PaymentCOD    = "COD (Cash on Destination)"
	PaymentOnline = "Pembayaran Online"
)

// Fulfillment types.
const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

type Order struct {
	OrderID string `gorm:"primaryKey;size:32" json:"orderId"`

	// Customer snapshot, immutable after creation.
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`

	// Fulfillment
	FulfillmentType string `json:"fulfillmentType"` // pickup | delivery
	ScheduledDate   string `json:"date"`
	ScheduledTime   string `json:"time,omitempty"`
	DeliveryMethod  string `json:"deliveryMethod"`

	// Payment. Amounts are integer rupiah, recomputed server-side at creation.
	PaymentMethod          string `json:"paymentMethod"`
	ItemsSubtotal          int64  `json:"itemsTotal"`
	DeliveryFee            int64  `json:"deliveryFee"`
	TotalAmount            int64  `json:"amount"`
	GatewayStatus          string `json:"gatewayStatus,omitempty"`   // raw transaction_status
	GatewayTransactionType string `json:"gatewayTransactionType,omitempty"` // payment_type
	FraudStatus            string `json:"fraudStatus,omitempty"`
	PaymentURL             string `json:"paymentUrl,omitempty"`

	Status OrderStatus `gorm:"size:16;index" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	OrderID string `gorm:"index;size:32" json:"-"`

	ItemID    string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"amount"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// Paid reports whether the stored gateway fields already reached a paid
// state. Once true, automatic updates may never take the order back to
// pending/unpaid.
func (o *Order) Paid() bool {
	if o.GatewayStatus == "settlement" {
		return true
	}
	return o.GatewayStatus == "capture" && o.FraudStatus == "accept"
}
