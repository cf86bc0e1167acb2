package model

type CreateOrderItemInput struct {
	ItemID    string `json:"id"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"amount" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Image     string `json:"image"`
}

type CreateOrderInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Note    string `json:"note"`

	FulfillmentType string `json:"fulfillmentType" validate:"omitempty,oneof=pickup delivery"`
	ScheduledDate   string `json:"date" validate:"required"`
	ScheduledTime   string `json:"time"`
	DeliveryMethod  string `json:"deliveryMethod"`

	PaymentMethod string `json:"paymentMethod" validate:"required,oneof='COD (Cash on Destination)' 'Pembayaran Online'"`

	Items []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type LoginInput struct {
	Password string `json:"password" validate:"required"`
}
