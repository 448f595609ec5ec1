package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/services"
)

func TestAnalyticsService_SalesByDealer(t *testing.T) {
	store := newMemStore()
	store.putOrder(models.Order{
		ID: "o1", DealerID: "d1", DealerName: "Sharma Auto Parts",
		Status: models.OrderStatusApproved, TotalPrice: decimal.NewFromInt(1000), TotalLitres: 48,
	})
	store.putOrder(models.Order{
		ID: "o2", DealerID: "d1", DealerName: "Sharma Auto Parts",
		Status: models.OrderStatusApproved, TotalPrice: decimal.NewFromInt(500), TotalLitres: 24,
	})
	store.putOrder(models.Order{
		ID: "o3", DealerID: "d2", DealerName: "Agarwal Motors",
		Status: models.OrderStatusApproved, TotalPrice: decimal.NewFromInt(9000), TotalLitres: 20,
	})
	// Pending and rejected orders never count as sales.
	store.putOrder(models.Order{
		ID: "o4", DealerID: "d2", DealerName: "Agarwal Motors",
		Status: models.OrderStatusPending, TotalPrice: decimal.NewFromInt(400), TotalLitres: 100,
	})
	store.putOrder(models.Order{
		ID: "o5", DealerID: "d3", DealerName: "Verma Traders",
		Status: models.OrderStatusRejected, TotalPrice: decimal.NewFromInt(700), TotalLitres: 35,
	})

	svc := services.NewAnalyticsService(store)
	report, err := svc.SalesByDealer(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	// Sorted by litres sold descending, not by revenue.
	assert.Equal(t, "d1", report[0].DealerID)
	assert.Equal(t, 2, report[0].Orders)
	assert.InDelta(t, 72.0, report[0].TotalLitres, 1e-9)
	assert.True(t, report[0].TotalRevenue.Equal(decimal.NewFromInt(1500)))
	assert.Contains(t, report[0].Revenue, "₹")

	assert.Equal(t, "d2", report[1].DealerID)
	assert.Equal(t, 1, report[1].Orders)
	assert.True(t, report[1].TotalRevenue.Equal(decimal.NewFromInt(9000)))
}

func TestAnalyticsService_SalesByDealer_Empty(t *testing.T) {
	store := newMemStore()
	svc := services.NewAnalyticsService(store)

	report, err := svc.SalesByDealer(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}
