// Package events broadcasts order lifecycle changes over redis pub/sub so
// the admin dashboard websocket sees status changes without polling.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bipang_apung/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const Channel = "orders:events"

// Triggers, one per mutation entry point.
const (
	TriggerCreate  = "create"
	TriggerWebhook = "webhook"
	TriggerAdmin   = "admin"
	TriggerRecheck = "recheck"
	TriggerSweep   = "sweep"
)

type OrderEvent struct {
	EventID string            `json:"eventId"`
	OrderID string            `json:"orderId"`
	From    model.OrderStatus `json:"from,omitempty"`
	To      model.OrderStatus `json:"to"`
	Trigger string            `json:"trigger"`
	At      time.Time         `json:"at"`
}

type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

// Publish is best-effort: the mutation has already been persisted, a missed
// event only means a dashboard refresh.
func (h *Hub) Publish(ctx context.Context, ev OrderEvent) {
	if h == nil || h.rdb == nil {
		return
	}
	ev.EventID = uuid.New().String()
	ev.At = time.Now()

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[EVENTS] marshal %s: %v", ev.OrderID, err)
		return
	}
	if err := h.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Printf("[EVENTS] publish %s: %v", ev.OrderID, err)
	}
}

// Subscribe opens a subscription on the order-event channel. The caller owns
// the returned PubSub and must Close it.
func (h *Hub) Subscribe(ctx context.Context) *redis.PubSub {
	if h == nil || h.rdb == nil {
		return nil
	}
	return h.rdb.Subscribe(ctx, Channel)
}
