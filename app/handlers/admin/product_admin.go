package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/helpers"
	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/services"
)

type VariantForm struct {
	Size           string          `json:"size" validate:"required,max=50"`
	UnitsPerCarton int             `json:"units_per_carton" validate:"required,gt=0"`
	PricePerCarton decimal.Decimal `json:"price_per_carton"`
	MRP            decimal.Decimal `json:"mrp"`
	StockCartons   int             `json:"stock_cartons" validate:"gte=0"`
}

type ProductForm struct {
	Name        string        `json:"name" validate:"required,min=2,max=255"`
	Category    string        `json:"category" validate:"max=100"`
	ImageBase64 string        `json:"image_base64"`
	Variants    []VariantForm `json:"variants" validate:"required,min=1,dive"`
}

func (f *ProductForm) toModel(id string) *models.Product {
	product := &models.Product{
		ID:          id,
		Name:        f.Name,
		Category:    f.Category,
		ImageBase64: f.ImageBase64,
	}
	for _, v := range f.Variants {
		product.Variants = append(product.Variants, models.Variant{
			Size:           v.Size,
			UnitsPerCarton: v.UnitsPerCarton,
			PricePerCarton: v.PricePerCarton,
			MRP:            v.MRP,
			StockCartons:   v.StockCartons,
		})
	}
	return product
}

func (h *AdminHandler) decodeProductForm(w http.ResponseWriter, r *http.Request) (*ProductForm, bool) {
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": helpers.FormatValidationErrors(validationErrors),
		})
		return nil, false
	}
	return &form, true
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product := form.toModel("")
	if err := h.catalogSvc.CreateProduct(r.Context(), product); err != nil {
		log.Printf("CreateProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create product"})
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"product": product})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	form, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product := form.toModel(productID)
	if err := h.catalogSvc.ReplaceProduct(r.Context(), product); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("UpdateProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update product"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteProduct(r.Context(), productID); err != nil {
		log.Printf("DeleteProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete product"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// ImportPrices accepts a multipart upload ("file") holding the distributor
// price sheet and merges it into the catalog.
func (h *AdminHandler) ImportPrices(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "csv file upload required (field: file)"})
		return
	}
	defer file.Close()

	updated, err := h.catalogSvc.ImportPrices(r.Context(), file)
	if err != nil {
		log.Printf("ImportPrices: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "import failed"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"message": fmt.Sprintf("Processed. Matched & updated %d variants.", updated),
	})
}
