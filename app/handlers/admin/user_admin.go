package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/services"
	"github.com/hatim/makmanager/app/utils/format"
)

// Ledger serves the admin ledger view from the live feed, falling back to a
// direct query while the feed warms up.
func (h *AdminHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	if h.ledgerFeed != nil && h.ledgerFeed.Len() > 0 {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"users": h.ledgerFeed.Snapshot()})
		return
	}

	users, err := h.ledgerSvc.ListUsers(r.Context())
	if err != nil {
		log.Printf("Ledger: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch ledger"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *AdminHandler) ApproveDealer(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["id"]

	if err := h.ledgerSvc.ApproveDealer(r.Context(), uid); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		log.Printf("ApproveDealer: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "approval failed"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "dealer approved"})
}

type PaymentForm struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["id"]

	var form PaymentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	newBalance, err := h.ledgerSvc.RecordPayment(r.Context(), uid, form.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "amount must be greater than zero"})
		case errors.Is(err, services.ErrUserNotFound):
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		default:
			log.Printf("RecordPayment: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record payment"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message":     "payment recorded",
		"new_balance": newBalance,
		"balance":     format.FormatRupee(newBalance),
	})
}

// SettlementLink hands the admin a payment link for a dealer's outstanding
// balance.
func (h *AdminHandler) SettlementLink(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["id"]

	dealer, err := h.ledgerSvc.GetUser(r.Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		log.Printf("SettlementLink: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch user"})
		return
	}

	link, err := h.paymentSvc.SettlementLink(dealer)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "dealer has no outstanding balance"})
			return
		}
		log.Printf("SettlementLink: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build payment link"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, link)
}
