package model

// GatewayNotification is the body Midtrans POSTs to the notification
// endpoint. SignatureKey must match sha512(order_id + status_code +
// gross_amount + server key) before anything else happens.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// GatewayTransaction is the live transaction state fetched from Midtrans.
type GatewayTransaction struct {
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// GatewayCharge is the result of creating a hosted-payment transaction.
type GatewayCharge struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}
