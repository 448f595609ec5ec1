package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
)

type CatalogService struct {
	store repositories.Store
}

func NewCatalogService(store repositories.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Products().GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.store.Products().Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ReplaceProduct overwrites the stored product, variant list included.
func (s *CatalogService) ReplaceProduct(ctx context.Context, product *models.Product) error {
	existing, err := s.store.Products().GetByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to get product %s: %w", product.ID, err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.store.Products().Replace(ctx, product); err != nil {
		return fmt.Errorf("failed to replace product %s: %w", product.ID, err)
	}
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.Products().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// Price sheet columns, mapped positionally: A=name, B=size, C=units per
// carton, F=rate per unit, G=MRP. D and E are ignored.
const (
	csvColName = 0
	csvColSize = 1
	csvColCap  = 2
	csvColRate = 5
	csvColMRP  = 6
)

// ImportPrices merges a distributor price sheet into the catalog. Rows match
// case-insensitively on (product name, variant size); a match overwrites the
// variant's carton price (rate x capacity) and MRP. Header rows and anything
// unmatched are skipped. Best effort per variant: no transaction, last write
// wins, returns the number of variants updated.
func (s *CatalogService) ImportPrices(ctx context.Context, r io.Reader) (int, error) {
	products, err := s.store.Products().GetProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch products for import: %w", err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	updated := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return updated, fmt.Errorf("csv error: %w", err)
		}
		if len(record) < csvColMRP+1 {
			continue
		}

		name := strings.TrimSpace(record[csvColName])
		size := strings.TrimSpace(record[csvColSize])
		capStr := strings.TrimSpace(record[csvColCap])
		rateStr := strings.TrimSpace(record[csvColRate])
		mrpStr := strings.TrimSpace(record[csvColMRP])

		if name == "" || size == "" {
			continue
		}
		// Header and section rows never carry a numeric rate.
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			continue
		}

		capFloat, err := strconv.ParseFloat(capStr, 64)
		unitsPerCarton := 1
		if err == nil && int(capFloat) > 0 {
			unitsPerCarton = int(capFloat)
		}

		mrp, err := decimal.NewFromString(mrpStr)
		if err != nil {
			mrp = decimal.Zero
		}

		for pi := range products {
			if !strings.EqualFold(products[pi].Name, name) {
				continue
			}
			for vi := range products[pi].Variants {
				variant := &products[pi].Variants[vi]
				if !strings.EqualFold(variant.Size, size) {
					continue
				}
				newPrice := rate.Mul(decimal.NewFromInt(int64(unitsPerCarton)))
				if err := s.store.Products().UpdateVariantPricing(ctx, variant.ID, newPrice, mrp); err != nil {
					log.Printf("CatalogService.ImportPrices: failed to update %s %s: %v", name, size, err)
					continue
				}
				variant.PricePerCarton = newPrice
				variant.MRP = mrp
				updated++
			}
			break
		}
	}
	return updated, nil
}
