package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/services"
)

func seedCatalogAndDealer(store *memStore) {
	store.putProduct(models.Product{
		ID:   "prod-1",
		Name: "Premium Engine Oil 20W-40",
		Variants: []models.Variant{
			{ID: "var-1", ProductID: "prod-1", Size: "1L", UnitsPerCarton: 12, PricePerCarton: decimal.NewFromInt(250), StockCartons: 5},
			{ID: "var-2", ProductID: "prod-1", Size: "900ml", UnitsPerCarton: 10, PricePerCarton: decimal.NewFromInt(200), StockCartons: 2},
		},
	})
	store.putUser(models.User{
		ID:             "dealer-1",
		Name:           "Sharma Auto Parts",
		Phone:          "9876543210",
		Role:           models.RoleDealer,
		IsApproved:     true,
		CurrentBalance: decimal.Zero,
	})
}

func pendingOrder(items ...models.OrderItem) models.Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.CartonQuantity))))
	}
	return models.Order{
		ID:         "order-1",
		DealerID:   "dealer-1",
		DealerName: "Sharma Auto Parts",
		OrderDate:  time.Now(),
		Status:     models.OrderStatusPending,
		Items:      items,
		TotalPrice: total,
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	svc := services.NewOrderService(store)

	product := store.product("prod-1")
	cart := services.NewCart()
	require.True(t, cart.AddItem(&product, &product.Variants[0], 4))

	order, err := svc.PlaceOrder(context.Background(), "dealer-1", cart)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Sharma Auto Parts", order.DealerName)
	assert.Equal(t, "9876543210", order.DealerPhone)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1000)))
	assert.InDelta(t, 48.0, order.TotalLitres, 1e-9)

	// Placement must not touch stock or balance.
	assert.Equal(t, 5, store.product("prod-1").Variants[0].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.Zero))

	persisted := store.order(order.ID)
	assert.Len(t, persisted.Items, 1)
}

func TestOrderService_PlaceOrder_ProfileFallbacks(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	store.putUser(models.User{ID: "dealer-2", Role: models.RoleDealer, IsApproved: true})
	svc := services.NewOrderService(store)

	product := store.product("prod-1")
	cart := services.NewCart()
	require.True(t, cart.AddItem(&product, &product.Variants[0], 1))

	order, err := svc.PlaceOrder(context.Background(), "dealer-2", cart)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Phone", order.DealerPhone)
	assert.Equal(t, "Dealer (Unknown Phone)", order.DealerName)
}

func TestOrderService_PlaceOrder_Errors(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	svc := services.NewOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), "dealer-1", services.NewCart())
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	product := store.product("prod-1")
	cart := services.NewCart()
	require.True(t, cart.AddItem(&product, &product.Variants[0], 1))
	_, err = svc.PlaceOrder(context.Background(), "no-such-dealer", cart)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestOrderService_Approve(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	store.putOrder(pendingOrder(models.OrderItem{
		ProductID: "prod-1", ProductName: "Premium Engine Oil 20W-40",
		VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 4,
		PriceAtOrder: decimal.NewFromInt(250),
	}))
	svc := services.NewOrderService(store)

	require.NoError(t, svc.Approve(context.Background(), "order-1"))

	assert.Equal(t, models.OrderStatusApproved, store.order("order-1").Status)
	assert.Equal(t, 1, store.product("prod-1").Variants[0].StockCartons)
	assert.Equal(t, 2, store.product("prod-1").Variants[1].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.NewFromInt(1000)))
}

func TestOrderService_Approve_AllOrNothing(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	// First line fits, second would drive 900ml stock negative.
	store.putOrder(pendingOrder(
		models.OrderItem{ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 2, PriceAtOrder: decimal.NewFromInt(250)},
		models.OrderItem{ProductID: "prod-1", VariantSize: "900ml", UnitsPerCarton: 10, CartonQuantity: 3, PriceAtOrder: decimal.NewFromInt(200)},
	))
	svc := services.NewOrderService(store)

	err := svc.Approve(context.Background(), "order-1")
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	// Zero writes: stock, balance and status all untouched.
	assert.Equal(t, 5, store.product("prod-1").Variants[0].StockCartons)
	assert.Equal(t, 2, store.product("prod-1").Variants[1].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.Zero))
	assert.Equal(t, models.OrderStatusPending, store.order("order-1").Status)
}

func TestOrderService_Approve_SameVariantAcrossLines(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	// Two lines draining the same variant: 3+3 > 5 must abort even though
	// each line alone would pass.
	store.putOrder(pendingOrder(
		models.OrderItem{ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 3, PriceAtOrder: decimal.NewFromInt(250)},
		models.OrderItem{ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 3, PriceAtOrder: decimal.NewFromInt(250)},
	))
	svc := services.NewOrderService(store)

	err := svc.Approve(context.Background(), "order-1")
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Equal(t, 5, store.product("prod-1").Variants[0].StockCartons)
}

func TestOrderService_Approve_Twice(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	store.putOrder(pendingOrder(models.OrderItem{
		ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 1, PriceAtOrder: decimal.NewFromInt(250),
	}))
	svc := services.NewOrderService(store)

	require.NoError(t, svc.Approve(context.Background(), "order-1"))

	err := svc.Approve(context.Background(), "order-1")
	assert.ErrorIs(t, err, services.ErrAlreadyProcessed)

	// Rejected rather than replayed: balance and stock reflect one approval.
	assert.Equal(t, 4, store.product("prod-1").Variants[0].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.NewFromInt(250)))
}

func TestOrderService_Approve_NotFound(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	svc := services.NewOrderService(store)

	assert.ErrorIs(t, svc.Approve(context.Background(), "no-such-order"), services.ErrOrderNotFound)
}

func TestOrderService_Approve_MissingDealer(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	order := pendingOrder(models.OrderItem{
		ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 1, PriceAtOrder: decimal.NewFromInt(250),
	})
	order.DealerID = "gone"
	store.putOrder(order)
	svc := services.NewOrderService(store)

	assert.ErrorIs(t, svc.Approve(context.Background(), "order-1"), services.ErrUserNotFound)
	assert.Equal(t, models.OrderStatusPending, store.order("order-1").Status)
}

func TestOrderService_Approve_DeletedProductLineSkipped(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	// The product behind the second line was deleted after placement: the
	// line is skipped, the dealer is still billed the snapshot total.
	store.putOrder(pendingOrder(
		models.OrderItem{ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 2, PriceAtOrder: decimal.NewFromInt(250)},
		models.OrderItem{ProductID: "deleted-prod", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 2, PriceAtOrder: decimal.NewFromInt(300)},
	))
	svc := services.NewOrderService(store)

	require.NoError(t, svc.Approve(context.Background(), "order-1"))

	assert.Equal(t, 3, store.product("prod-1").Variants[0].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, models.OrderStatusApproved, store.order("order-1").Status)
}

func TestOrderService_Reject(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	store.putOrder(pendingOrder(models.OrderItem{
		ProductID: "prod-1", VariantSize: "1L", UnitsPerCarton: 12, CartonQuantity: 2, PriceAtOrder: decimal.NewFromInt(250),
	}))
	svc := services.NewOrderService(store)

	require.NoError(t, svc.Reject(context.Background(), "order-1"))

	assert.Equal(t, models.OrderStatusRejected, store.order("order-1").Status)
	assert.Equal(t, 5, store.product("prod-1").Variants[0].StockCartons)
	assert.True(t, store.user("dealer-1").CurrentBalance.Equal(decimal.Zero))
}

func TestOrderService_MyOrders(t *testing.T) {
	store := newMemStore()
	seedCatalogAndDealer(store)
	older := pendingOrder()
	older.ID = "order-old"
	older.OrderDate = time.Now().Add(-time.Hour)
	store.putOrder(older)

	newer := pendingOrder()
	newer.ID = "order-new"
	store.putOrder(newer)

	other := pendingOrder()
	other.ID = "order-other"
	other.DealerID = "someone-else"
	store.putOrder(other)

	svc := services.NewOrderService(store)
	orders, err := svc.MyOrders(context.Background(), "dealer-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-new", orders[0].ID)
	assert.Equal(t, "order-old", orders[1].ID)
}
