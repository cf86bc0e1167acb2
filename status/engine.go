// Package status derives the canonical order status from stored order state
// and, when available, a live gateway transaction. Every surface (public
// lookup page, admin dashboard, webhook handling) goes through Resolve so
// there is exactly one place that interprets gateway responses.
package status

import "bipang_apung/model"

// Resolution is what Resolve hands back to callers.
type Resolution struct {
	Status                model.OrderStatus `json:"status"`
	Label                 string            `json:"label"`
	Terminal              bool              `json:"isTerminal"`
	RequiresPaymentAction bool              `json:"requiresPaymentAction"`
}

var labels = map[model.OrderStatus]string{
	model.StatusPending:    "Menunggu",
	model.StatusUnpaid:     "Belum Bayar",
	model.StatusProcessing: "Diproses",
	model.StatusCompleted:  "Selesai",
	model.StatusCancelled:  "Dibatalkan",
}

// Label returns the Indonesian display label for a canonical status.
func Label(s model.OrderStatus) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[model.StatusPending]
}

// Resolve computes the canonical status for an order. live may be nil when no
// fresh gateway data is available (COD orders, or a failed gateway call), in
// which case the stored status stands.
//
// Automatic transitions are one-way: once the stored gateway fields reached a
// paid state, a stale "pending" from the gateway never takes the order back
// to unpaid. Terminal stored statuses are kept no matter what the gateway
// says; only an admin override can move an order out of them.
func Resolve(o *model.Order, live *model.GatewayTransaction) Resolution {
	stored := o.Status
	if stored == "" {
		stored = model.StatusPending
	}

	if o.PaymentMethod != model.PaymentOnline {
		// COD: gateway data is irrelevant, admins drive the lifecycle.
		return describe(o, stored)
	}
	if live == nil || stored.Terminal() {
		return describe(o, stored)
	}

	next := stored
	switch live.TransactionStatus {
	case "settlement":
		next = paidNext(stored)
	case "capture":
		switch live.FraudStatus {
		case "accept":
			next = paidNext(stored)
		case "challenge":
			// Held by fraud review, kitchen must not start yet.
			next = paidNext(stored)
		}
	case "pending":
		if !o.Paid() && stored != model.StatusProcessing {
			next = model.StatusUnpaid
		}
	case "expire", "deny", "cancel":
		next = model.StatusCancelled
	}

	return describe(o, next)
}

// paidNext keeps a stored status that already advanced past payment.
func paidNext(stored model.OrderStatus) model.OrderStatus {
	if stored == model.StatusProcessing || stored == model.StatusCompleted {
		return stored
	}
	return model.StatusPending
}

func describe(o *model.Order, s model.OrderStatus) Resolution {
	return Resolution{
		Status:   s,
		Label:    Label(s),
		Terminal: s.Terminal(),
		// Only a still-payable order gets the "resume payment" affordance.
		// Expired or otherwise cancelled transactions leave a dead link
		// behind, so cancelled never qualifies.
		RequiresPaymentAction: s == model.StatusUnpaid && o.PaymentURL != "",
	}
}

var ranks = map[model.OrderStatus]int{
	model.StatusUnpaid:     0,
	model.StatusPending:    1,
	model.StatusProcessing: 2,
	model.StatusCompleted:  3,
	model.StatusCancelled:  3,
}

// Forward reports whether from -> to is a monotonic lifecycle move, the only
// kind automatic triggers (webhook, re-check, sweep) may persist. Admin
// overrides do not consult this. pending -> unpaid is allowed as a
// refinement: both mean "not paid yet" for an online order awaiting its
// first gateway confirmation.
func Forward(from, to model.OrderStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if from == model.StatusPending && to == model.StatusUnpaid {
		return true
	}
	return ranks[to] > ranks[from]
}
