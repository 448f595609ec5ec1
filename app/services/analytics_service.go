package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/repositories"
	"github.com/hatim/makmanager/app/utils/format"
)

// DealerSales aggregates a dealer's approved orders for the sales report.
type DealerSales struct {
	DealerID     string          `json:"dealer_id"`
	DealerName   string          `json:"dealer_name"`
	Orders       int             `json:"orders"`
	TotalLitres  float64         `json:"total_litres"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Revenue      string          `json:"revenue"`
}

type AnalyticsService struct {
	store repositories.Store
}

func NewAnalyticsService(store repositories.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// SalesByDealer reads only APPROVED orders and groups them per dealer, sorted
// by litres sold descending.
func (s *AnalyticsService) SalesByDealer(ctx context.Context) ([]DealerSales, error) {
	orders, err := s.store.Orders().GetApprovedOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approved orders: %w", err)
	}

	byDealer := map[string]*DealerSales{}
	for _, order := range orders {
		stats, ok := byDealer[order.DealerID]
		if !ok {
			stats = &DealerSales{DealerID: order.DealerID, DealerName: order.DealerName, TotalRevenue: decimal.Zero}
			byDealer[order.DealerID] = stats
		}
		stats.Orders++
		stats.TotalLitres += order.TotalLitres
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalPrice)
	}

	result := make([]DealerSales, 0, len(byDealer))
	for _, stats := range byDealer {
		stats.Revenue = format.FormatRupee(stats.TotalRevenue)
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TotalLitres > result[j].TotalLitres })
	return result, nil
}
