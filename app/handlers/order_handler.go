package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/hatim/makmanager/app/helpers"
	"github.com/hatim/makmanager/app/services"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
	carts    *services.CartStore
}

func NewOrderHandler(r *render.Render, orderSvc *services.OrderService, carts *services.CartStore) *OrderHandler {
	return &OrderHandler{render: r, orderSvc: orderSvc, carts: carts}
}

// PlaceOrder submits the session cart as a PENDING order and drops the cart
// on success. The dealer approval gate runs as middleware before this.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	cart := h.carts.Get(user.ID)

	order, err := h.orderSvc.PlaceOrder(r.Context(), user.ID, cart)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "cart is empty"})
			return
		}
		log.Printf("PlaceOrder: failed for dealer %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "order could not be placed. Please try again."})
		return
	}

	h.carts.Drop(user.ID)
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"order": order})
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	orders, err := h.orderSvc.MyOrders(r.Context(), user.ID)
	if err != nil {
		log.Printf("MyOrders: failed for dealer %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch orders"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
