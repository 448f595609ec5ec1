package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hatim/makmanager/app/services"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.AllOrders(r.Context())
	if err != nil {
		log.Printf("ListOrders: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch orders"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder returns the order together with the dealer's current address. The
// two reads are independent; a missing dealer record degrades to order-only.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := h.orderSvc.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("GetOrder: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch order"})
		return
	}

	response := map[string]interface{}{"order": order}
	dealer, err := h.ledgerSvc.GetUser(r.Context(), order.DealerID)
	if err == nil {
		response["dealer_address"] = dealer.Address
		response["dealer_city"] = dealer.City
	}

	_ = h.render.JSON(w, http.StatusOK, response)
}

func (h *AdminHandler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	err := h.orderSvc.Approve(r.Context(), orderID)
	switch {
	case err == nil:
		_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "order approved, stock and balance updated"})
	case errors.Is(err, services.ErrOrderNotFound):
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, services.ErrAlreadyProcessed):
		_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": "order already processed"})
	case errors.Is(err, services.ErrInsufficientStock):
		_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "dealer not found"})
	default:
		log.Printf("ApproveOrder: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "approval failed"})
	}
}

func (h *AdminHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	if err := h.orderSvc.Reject(r.Context(), orderID); err != nil {
		log.Printf("RejectOrder: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "rejection failed"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "order rejected"})
}
