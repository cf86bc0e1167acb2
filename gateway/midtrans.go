// Package gateway wraps the Midtrans SDK behind an interface the order
// service (and its tests) can stand in for.
package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"bipang_apung/model"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Error wraps a failed gateway call. Callers decide per entry point whether
// it is fatal (order creation) or degrades to the stored status (re-check).
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("midtrans %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Gateway is the hosted-payment provider contract.
type Gateway interface {
	CreateTransaction(ctx context.Context, o *model.Order) (*model.GatewayCharge, error)
	TransactionStatus(ctx context.Context, orderID string) (*model.GatewayTransaction, error)
	VerifyNotification(n *model.GatewayNotification) bool
}

type Midtrans struct {
	snap      snap.Client
	core      coreapi.Client
	serverKey string
}

func NewMidtrans(serverKey, clientKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	// The source never pinned a timeout; 30s keeps a hung gateway from
	// holding a request slot forever.
	midtrans.DefaultGoHttpClient = &http.Client{Timeout: 30 * time.Second}

	m := &Midtrans{serverKey: serverKey}
	m.snap.New(serverKey, env)
	m.core.New(serverKey, env)
	_ = clientKey // only the hosted page needs it; kept for config symmetry
	return m
}

// CreateTransaction registers a Snap transaction for the order and returns
// the hosted payment URL. The delivery fee rides along as its own line item
// so the item details always sum to the gross amount.
func (m *Midtrans) CreateTransaction(ctx context.Context, o *model.Order) (*model.GatewayCharge, error) {
	items := make([]midtrans.ItemDetails, 0, len(o.Items)+1)
	for _, it := range o.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ItemID,
			Name:  it.Name,
			Price: it.UnitPrice,
			Qty:   int32(it.Quantity),
		})
	}
	if o.DeliveryFee > 0 {
		items = append(items, midtrans.ItemDetails{
			ID:    "DELIVERY",
			Name:  "Biaya Pengiriman",
			Price: o.DeliveryFee,
			Qty:   1,
		})
	}

	addr := &midtrans.CustomerAddress{
		FName:   o.Name,
		Phone:   o.Phone,
		Address: o.Address,
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  o.OrderID,
			GrossAmt: o.TotalAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: o.Name,
			Email: fmt.Sprintf("%s@temp.com", o.OrderID),
			Phone: o.Phone,
			BillAddr: addr,
			ShipAddr: addr,
		},
		Items: &items,
	}

	m.snap.Options.SetContext(ctx)
	resp, merr := m.snap.CreateTransaction(req)
	if merr != nil {
		return nil, &Error{Op: "create transaction", StatusCode: merr.StatusCode, Err: merr}
	}
	return &model.GatewayCharge{
		OrderID:     o.OrderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (m *Midtrans) TransactionStatus(ctx context.Context, orderID string) (*model.GatewayTransaction, error) {
	m.core.Options.SetContext(ctx)
	resp, merr := m.core.CheckTransaction(orderID)
	if merr != nil {
		return nil, &Error{Op: "check transaction", StatusCode: merr.StatusCode, Err: merr}
	}
	return &model.GatewayTransaction{
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		PaymentType:       resp.PaymentType,
	}, nil
}

// VerifyNotification recomputes the notification signature and compares it
// against what Midtrans sent.
func (m *Midtrans) VerifyNotification(n *model.GatewayNotification) bool {
	return n.SignatureKey == Signature(n.OrderID, n.StatusCode, n.GrossAmount, m.serverKey)
}

// Signature is sha512 over order id + status code + gross amount + server
// key, hex encoded, per the Midtrans notification contract.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}
