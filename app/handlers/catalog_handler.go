package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/hatim/makmanager/app/services"
)

type CatalogHandler struct {
	render     *render.Render
	catalogSvc *services.CatalogService
}

func NewCatalogHandler(r *render.Render, catalogSvc *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{render: r, catalogSvc: catalogSvc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ListProducts(r.Context())
	if err != nil {
		log.Printf("ListProducts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load catalog"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}
