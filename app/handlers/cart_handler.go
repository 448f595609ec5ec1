package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/hatim/makmanager/app/helpers"
	"github.com/hatim/makmanager/app/services"
	"github.com/hatim/makmanager/app/utils/format"
)

type CartHandler struct {
	render           *render.Render
	validator        *validator.Validate
	carts            *services.CartStore
	catalogSvc       *services.CatalogService
	balanceTolerance decimal.Decimal
}

func NewCartHandler(r *render.Render, v *validator.Validate, carts *services.CartStore, catalogSvc *services.CatalogService, balanceTolerance decimal.Decimal) *CartHandler {
	return &CartHandler{
		render:           r,
		validator:        v,
		carts:            carts,
		catalogSvc:       catalogSvc,
		balanceTolerance: balanceTolerance,
	}
}

type CartItemForm struct {
	ProductID   string `json:"product_id" validate:"required"`
	VariantSize string `json:"variant_size" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required"`
}

func (h *CartHandler) cartResponse(cart *services.Cart) map[string]interface{} {
	total := cart.TotalPrice()
	return map[string]interface{}{
		"items":        cart.Items(),
		"total_price":  total,
		"total":        format.FormatRupee(total),
		"total_litres": cart.TotalLitres(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	_ = h.render.JSON(w, http.StatusOK, h.cartResponse(h.carts.Get(user.ID)))
}

// AddItem adds cartons to the session cart. Dealers carrying an outstanding
// balance above the tolerance are blocked until it is cleared.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	if user.CurrentBalance.GreaterThan(h.balanceTolerance) {
		_ = h.render.JSON(w, http.StatusForbidden, map[string]interface{}{
			"error":       "outstanding balance must be cleared before ordering",
			"outstanding": format.FormatRupee(user.CurrentBalance),
		})
		return
	}

	var form CartItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": helpers.FormatValidationErrors(validationErrors),
		})
		return
	}
	if form.Quantity <= 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "quantity must be greater than zero"})
		return
	}

	product, err := h.catalogSvc.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("AddItem: failed to get product %s: %v", form.ProductID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load product"})
		return
	}

	variant := product.FindVariant(form.VariantSize)
	if variant == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "variant not found"})
		return
	}

	cart := h.carts.Get(user.ID)
	if !cart.AddItem(product, variant, form.Quantity) {
		_ = h.render.JSON(w, http.StatusConflict, map[string]interface{}{
			"error":           "not enough stock",
			"available_stock": variant.StockCartons,
		})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form CartItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if form.ProductID == "" || form.VariantSize == "" {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "product_id and variant_size are required"})
		return
	}

	// Quantity edits re-check current stock so a raise cannot slip past the
	// add-time guard.
	stock := 0
	product, err := h.catalogSvc.GetProduct(r.Context(), form.ProductID)
	if err == nil {
		if variant := product.FindVariant(form.VariantSize); variant != nil {
			stock = variant.StockCartons
		}
	} else if !errors.Is(err, services.ErrProductNotFound) {
		log.Printf("UpdateItem: failed to get product %s: %v", form.ProductID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load product"})
		return
	}

	cart := h.carts.Get(user.ID)
	if !cart.UpdateQuantity(form.ProductID, form.VariantSize, form.Quantity, stock) {
		_ = h.render.JSON(w, http.StatusConflict, map[string]interface{}{
			"error":           "cannot update quantity",
			"available_stock": stock,
		})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form CartItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart := h.carts.Get(user.ID)
	cart.RemoveItem(form.ProductID, form.VariantSize)
	_ = h.render.JSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	h.carts.Drop(user.ID)
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
