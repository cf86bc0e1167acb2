package handler

import (
	"bipang_apung/events"
	"bipang_apung/order"
	"bipang_apung/store"
)

// Handler bundles the dependencies every route needs. Constructed once in
// main and handed to the router; nothing here is a package-level global.
type Handler struct {
	Orders  *order.Service
	Admin   store.AdminStore
	Hub     *events.Hub
	BaseURL string
}

func New(orders *order.Service, admin store.AdminStore, hub *events.Hub, baseURL string) *Handler {
	return &Handler{Orders: orders, Admin: admin, Hub: hub, BaseURL: baseURL}
}
