// Package worker runs the payment sweep: online orders stuck in
// pending/unpaid are re-checked against the gateway so expired payment links
// resolve to cancelled without anyone opening the lookup page.
package worker

import (
	"context"
	"log"
	"time"

	"bipang_apung/model"
	"bipang_apung/order"
	"bipang_apung/store"

	"github.com/go-co-op/gocron/v2"
)

const (
	sweepInterval = 10 * time.Minute
	// Orders younger than this are still inside the normal payment window.
	minAge = 15 * time.Minute
)

// StartPaymentSweep schedules the sweep and returns the scheduler so main
// can shut it down.
func StartPaymentSweep(svc *order.Service, st store.OrderStore) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() { sweep(svc, st) }),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func sweep(svc *order.Service, st store.OrderStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stale, err := st.ListStale(ctx,
		[]model.OrderStatus{model.StatusPending, model.StatusUnpaid},
		time.Now().Add(-minAge),
	)
	if err != nil {
		log.Printf("[CRON] payment sweep: %v", err)
		return
	}

	for _, o := range stale {
		// Already-paid orders are only waiting on the kitchen, nothing to
		// re-check with the gateway.
		if o.Paid() {
			continue
		}
		res, verified, err := svc.SweepRecheck(ctx, o.OrderID)
		if err != nil {
			log.Printf("[CRON] recheck %s: %v", o.OrderID, err)
			continue
		}
		if verified && res.Status != o.Status {
			log.Printf("[CRON] %s: %s -> %s", o.OrderID, o.Status, res.Status)
		}
	}
}
