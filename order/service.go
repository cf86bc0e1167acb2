// Package order owns the order lifecycle: creation and the three mutation
// paths (gateway webhook, admin override, status re-check). Nothing else in
// the codebase writes orderStatus or the payment fields.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bipang_apung/events"
	"bipang_apung/gateway"
	"bipang_apung/menu"
	"bipang_apung/model"
	"bipang_apung/status"
	"bipang_apung/store"
	"bipang_apung/wa"

	"github.com/jinzhu/copier"
)

var (
	// ErrInvalidSignature rejects a webhook whose signature key does not
	// match the recomputed hash. No mutation happens after it.
	ErrInvalidSignature = errors.New("invalid notification signature")
	// ErrInvalidStatus rejects an admin override outside the status enum.
	ErrInvalidStatus = errors.New("unrecognized order status")
)

// Notifier sends outbound WhatsApp texts.
type Notifier interface {
	SendText(ctx context.Context, text, phone string) error
}

type Service struct {
	store    store.OrderStore
	gw       gateway.Gateway
	notifier Notifier
	hub      *events.Hub
	baseURL  string
}

func NewService(st store.OrderStore, gw gateway.Gateway, notifier Notifier, hub *events.Hub, baseURL string) *Service {
	return &Service{store: st, gw: gw, notifier: notifier, hub: hub, baseURL: baseURL}
}

// NewOrderID generates the time-based public order id, e.g. BA-1700000000000.
func NewOrderID() string {
	return fmt.Sprintf("BA-%d", time.Now().UnixMilli())
}

// paidMarker reports whether a gateway answer describes a successful payment.
// Mirrors model.Order.Paid for not-yet-persisted fields.
func paidMarker(txStatus, fraudStatus string) bool {
	return txStatus == "settlement" || (txStatus == "capture" && fraudStatus == "accept")
}

// DeliveryFeeFor keeps the storefront rule: the delivery option that carries
// the "Rp 12.000" marker costs 12000, everything else (pickup, free radius)
// is 0.
func DeliveryFeeFor(method string) int64 {
	if strings.Contains(method, "Rp 12.000") {
		return 12000
	}
	return 0
}

// Create persists a new order. The total is always recomputed here from the
// line items plus the delivery fee; a client-sent total is never trusted.
// For online payment the Snap transaction is created first: if the gateway
// fails there is no order at all.
func (s *Service) Create(ctx context.Context, in *model.CreateOrderInput) (*model.Order, error) {
	o := &model.Order{}
	copier.Copy(o, in)
	o.OrderID = NewOrderID()
	o.Status = model.StatusPending
	o.Items = nil

	for _, it := range in.Items {
		item := model.OrderItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Image:     it.Image,
		}
		// Catalog price wins over whatever the client sent.
		if m, ok := menu.Lookup(it.ItemID); ok {
			item.Name = m.Name
			item.UnitPrice = m.Price
		}
		o.ItemsSubtotal += item.UnitPrice * int64(item.Quantity)
		o.Items = append(o.Items, item)
	}
	o.DeliveryFee = DeliveryFeeFor(in.DeliveryMethod)
	o.TotalAmount = o.ItemsSubtotal + o.DeliveryFee

	if o.FulfillmentType == "" {
		o.FulfillmentType = model.FulfillmentPickup
		if in.DeliveryMethod != "" {
			o.FulfillmentType = model.FulfillmentDelivery
		}
	}

	if o.PaymentMethod == model.PaymentOnline {
		charge, err := s.gw.CreateTransaction(ctx, o)
		if err != nil {
			return nil, err
		}
		o.PaymentURL = charge.RedirectURL
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}

	s.hub.Publish(ctx, events.OrderEvent{OrderID: o.OrderID, To: o.Status, Trigger: events.TriggerCreate})
	go s.sendCreatedText(o)
	return o, nil
}

// Get returns the stored order plus the canonical resolution of its stored
// state. It never calls the gateway; use Recheck for a live answer.
func (s *Service) Get(ctx context.Context, orderID string) (*model.Order, status.Resolution, error) {
	o, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, status.Resolution{}, err
	}
	return o, status.Resolve(o, nil), nil
}

// List returns orders newest first, optionally filtered by customer phone.
func (s *Service) List(ctx context.Context, phone string) ([]model.Order, error) {
	if phone != "" {
		phone = wa.NormalizePhone(phone)
	}
	return s.store.List(ctx, phone)
}

// Delete hard-deletes an order. Admin only, no tombstone.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	return s.store.Delete(ctx, orderID)
}

// ApplyNotification is mutation path 1: the gateway's server-to-server
// webhook. Replaying the same notification is a no-op, so concurrent
// deliveries converge on the same stored document.
func (s *Service) ApplyNotification(ctx context.Context, n *model.GatewayNotification) (status.Resolution, error) {
	if !s.gw.VerifyNotification(n) {
		return status.Resolution{}, ErrInvalidSignature
	}

	o, err := s.store.GetByID(ctx, n.OrderID)
	if err != nil {
		return status.Resolution{}, err
	}

	if o.PaymentMethod != model.PaymentOnline {
		// COD orders have no gateway transaction; their fields stay empty.
		return status.Resolve(o, nil), nil
	}

	live := &model.GatewayTransaction{
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		PaymentType:       n.PaymentType,
	}
	res := status.Resolve(o, live)

	// The paid marker is monotone: once the stored gateway fields say paid,
	// a later non-paid notification must not overwrite them, or the next
	// resolve would re-derive unpaid for a paid order.
	persistGateway := !o.Paid() || paidMarker(n.TransactionStatus, n.FraudStatus)

	changed := res.Status != o.Status
	if persistGateway {
		changed = changed ||
			o.GatewayStatus != n.TransactionStatus ||
			o.FraudStatus != n.FraudStatus ||
			o.GatewayTransactionType != n.PaymentType
	}
	if !changed {
		return res, nil
	}

	wasPaid := o.Paid()
	fields := map[string]any{"status": res.Status}
	if persistGateway {
		fields["gateway_status"] = n.TransactionStatus
		fields["fraud_status"] = n.FraudStatus
		fields["gateway_transaction_type"] = n.PaymentType
	}
	if err := s.store.Update(ctx, o.OrderID, fields); err != nil {
		return status.Resolution{}, err
	}

	if res.Status != o.Status {
		s.hub.Publish(ctx, events.OrderEvent{
			OrderID: o.OrderID, From: o.Status, To: res.Status,
			Trigger: events.TriggerWebhook,
		})
	}

	if persistGateway {
		o.GatewayStatus = n.TransactionStatus
		o.FraudStatus = n.FraudStatus
	}
	if !wasPaid && o.Paid() {
		go s.sendPaidText(o)
	}
	return res, nil
}

// AdminOverride is mutation path 2. It bypasses monotonicity: an admin may
// pull a completed order back to cancelled. Setting the current status again
// leaves the document untouched.
func (s *Service) AdminOverride(ctx context.Context, orderID string, target model.OrderStatus) (status.Resolution, error) {
	if !target.Valid() {
		return status.Resolution{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	o, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return status.Resolution{}, err
	}

	if o.Status != target {
		if err := s.store.Update(ctx, orderID, map[string]any{"status": target}); err != nil {
			return status.Resolution{}, err
		}
		s.hub.Publish(ctx, events.OrderEvent{
			OrderID: o.OrderID, From: o.Status, To: target,
			Trigger: events.TriggerAdmin,
		})
	}

	o.Status = target
	return status.Resolve(o, nil), nil
}

// Recheck is mutation path 3: pull fresh status from the gateway and persist
// only a forward move. A failed gateway call degrades to the stored status;
// the second return value reports whether the answer was actually verified.
func (s *Service) Recheck(ctx context.Context, orderID string) (status.Resolution, bool, error) {
	return s.recheck(ctx, orderID, events.TriggerRecheck)
}

// SweepRecheck is Recheck as invoked by the background payment sweep.
func (s *Service) SweepRecheck(ctx context.Context, orderID string) (status.Resolution, bool, error) {
	return s.recheck(ctx, orderID, events.TriggerSweep)
}

func (s *Service) recheck(ctx context.Context, orderID, trigger string) (status.Resolution, bool, error) {
	o, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return status.Resolution{}, false, err
	}

	if o.PaymentMethod != model.PaymentOnline {
		// COD has no gateway transaction to check.
		return status.Resolve(o, nil), true, nil
	}

	live, err := s.gw.TransactionStatus(ctx, o.OrderID)
	if err != nil {
		log.Printf("[RECHECK] %s: %v (menampilkan status terakhir)", o.OrderID, err)
		return status.Resolve(o, nil), false, nil
	}

	res := status.Resolve(o, live)

	persistGateway := !o.Paid() || paidMarker(live.TransactionStatus, live.FraudStatus)
	changed := res.Status != o.Status
	if persistGateway {
		changed = changed ||
			o.GatewayStatus != live.TransactionStatus ||
			o.FraudStatus != live.FraudStatus
	}
	if changed && status.Forward(o.Status, res.Status) {
		fields := map[string]any{"status": res.Status}
		if persistGateway {
			fields["gateway_status"] = live.TransactionStatus
			fields["fraud_status"] = live.FraudStatus
			if live.PaymentType != "" {
				fields["gateway_transaction_type"] = live.PaymentType
			}
		}
		if err := s.store.Update(ctx, o.OrderID, fields); err != nil {
			return status.Resolution{}, false, err
		}
		if res.Status != o.Status {
			s.hub.Publish(ctx, events.OrderEvent{
				OrderID: o.OrderID, From: o.Status, To: res.Status,
				Trigger: trigger,
			})
		}
	}
	return res, true, nil
}

func (s *Service) sendCreatedText(o *model.Order) {
	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf(
		"Terima kasih telah berbelanja di Babi Panggang Apung \nPesanan Anda sedang diproses. Order ID: %s \n%s/cekorder/%s",
		o.OrderID, s.baseURL, o.OrderID,
	)
	s.sendText(o, msg)
}

func (s *Service) sendPaidText(o *model.Order) {
	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf(
		"Pembayaran untuk pesanan %s sudah kami terima. Pesanan Anda segera diproses. \n%s/cekorder/%s",
		o.OrderID, s.baseURL, o.OrderID,
	)
	s.sendText(o, msg)
}

func (s *Service) sendText(o *model.Order, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.notifier.SendText(ctx, msg, wa.NormalizePhone(o.Phone)); err != nil {
		log.Printf("[WA] %s: %v", o.OrderID, err)
	}
}
