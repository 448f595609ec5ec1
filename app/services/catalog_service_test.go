package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/services"
)

func seedPriceCatalog(store *memStore) {
	store.putProduct(models.Product{
		ID:   "prod-1",
		Name: "Premium Engine Oil 20W-40",
		Variants: []models.Variant{
			{ID: "var-1", ProductID: "prod-1", Size: "1L", UnitsPerCarton: 12, PricePerCarton: decimal.NewFromInt(250), MRP: decimal.NewFromInt(30), StockCartons: 5},
			{ID: "var-2", ProductID: "prod-1", Size: "500ml", UnitsPerCarton: 24, PricePerCarton: decimal.NewFromInt(300), MRP: decimal.NewFromInt(18), StockCartons: 3},
		},
	})
	store.putProduct(models.Product{
		ID:   "prod-2",
		Name: "Coolant Concentrate",
		Variants: []models.Variant{
			{ID: "var-3", ProductID: "prod-2", Size: "5L", UnitsPerCarton: 4, PricePerCarton: decimal.NewFromInt(900), StockCartons: 2},
		},
	})
}

func TestCatalogService_ImportPrices(t *testing.T) {
	store := newMemStore()
	seedPriceCatalog(store)
	svc := services.NewCatalogService(store)

	// Header row, a matching row with a quoted comma in the name, a
	// case-insensitive match, and an unmatched product.
	sheet := strings.Join([]string{
		`Product,Size,Cap,Col D,Col E,Rate,MRP`,
		`"Premium Engine Oil 20W-40",1L,12,,,25.50,32`,
		`COOLANT CONCENTRATE,5l,4,,,240,1050`,
		`Gear Oil EP-90,1L,12,,,20,26`,
	}, "\n")

	updated, err := svc.ImportPrices(context.Background(), strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	// Carton price is rate x units per carton.
	oil := store.product("prod-1")
	assert.True(t, oil.Variants[0].PricePerCarton.Equal(decimal.NewFromFloat(306)), "got %s", oil.Variants[0].PricePerCarton)
	assert.True(t, oil.Variants[0].MRP.Equal(decimal.NewFromInt(32)))
	// The 500ml variant was not in the sheet and keeps its price.
	assert.True(t, oil.Variants[1].PricePerCarton.Equal(decimal.NewFromInt(300)))

	coolant := store.product("prod-2")
	assert.True(t, coolant.Variants[0].PricePerCarton.Equal(decimal.NewFromInt(960)))
	assert.True(t, coolant.Variants[0].MRP.Equal(decimal.NewFromInt(1050)))
}

func TestCatalogService_ImportPrices_SkipsBadRows(t *testing.T) {
	store := newMemStore()
	seedPriceCatalog(store)
	svc := services.NewCatalogService(store)

	sheet := strings.Join([]string{
		`,,,,,,`,
		`ENGINE OILS,,,,,,`,
		`Premium Engine Oil 20W-40,1L,12,,,not-a-rate,32`,
		`Premium Engine Oil 20W-40,1L,12`,
	}, "\n")

	updated, err := svc.ImportPrices(context.Background(), strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
	assert.True(t, store.product("prod-1").Variants[0].PricePerCarton.Equal(decimal.NewFromInt(250)))
}

func TestCatalogService_ImportPrices_MissingMRPDefaultsToZero(t *testing.T) {
	store := newMemStore()
	seedPriceCatalog(store)
	svc := services.NewCatalogService(store)

	updated, err := svc.ImportPrices(context.Background(),
		strings.NewReader(`Premium Engine Oil 20W-40,500ml,24,,,12.50,`))
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	variant := store.product("prod-1").Variants[1]
	assert.True(t, variant.PricePerCarton.Equal(decimal.NewFromInt(300)))
	assert.True(t, variant.MRP.Equal(decimal.Zero))
}

func TestCatalogService_ReplaceProduct(t *testing.T) {
	store := newMemStore()
	seedPriceCatalog(store)
	svc := services.NewCatalogService(store)

	err := svc.ReplaceProduct(context.Background(), &models.Product{ID: "missing", Name: "Ghost"})
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	replacement := &models.Product{
		ID:   "prod-2",
		Name: "Coolant Concentrate",
		Variants: []models.Variant{
			{Size: "1L", UnitsPerCarton: 12, PricePerCarton: decimal.NewFromInt(600), StockCartons: 10},
		},
	}
	require.NoError(t, svc.ReplaceProduct(context.Background(), replacement))

	stored := store.product("prod-2")
	require.Len(t, stored.Variants, 1)
	assert.Equal(t, "1L", stored.Variants[0].Size)
	assert.Equal(t, 10, stored.Variants[0].StockCartons)
}

func TestCatalogService_GetProduct(t *testing.T) {
	store := newMemStore()
	seedPriceCatalog(store)
	svc := services.NewCatalogService(store)

	product, err := svc.GetProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Engine Oil 20W-40", product.Name)

	_, err = svc.GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}
