package admin

import (
	"log"
	"net/http"
)

// SalesReport serves the per-dealer litres and revenue breakdown built from
// approved orders only.
func (h *AdminHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsSvc.SalesByDealer(r.Context())
	if err != nil {
		log.Printf("SalesReport: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build sales report"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"dealers": stats})
}
