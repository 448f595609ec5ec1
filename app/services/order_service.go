package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
)

type OrderService struct {
	store repositories.Store
}

func NewOrderService(store repositories.Store) *OrderService {
	return &OrderService{store: store}
}

// PlaceOrder persists the cart as a PENDING order. Dealer name and phone are
// denormalized onto the order, with placeholders when the profile is
// incomplete. Stock and balance are untouched until approval. Single attempt:
// a failed write is surfaced to the caller, never retried here.
func (s *OrderService) PlaceOrder(ctx context.Context, dealerID string, cart *Cart) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	dealer, err := s.store.Users().FindByID(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dealer %s: %w", dealerID, err)
	}
	if dealer == nil {
		return nil, ErrUserNotFound
	}

	dealerPhone := dealer.Phone
	if dealerPhone == "" {
		dealerPhone = "Unknown Phone"
	}
	dealerName := dealer.Name
	if dealerName == "" {
		dealerName = fmt.Sprintf("Dealer (%s)", dealerPhone)
	}

	order := &models.Order{
		ID:          uuid.New().String(),
		DealerID:    dealerID,
		DealerName:  dealerName,
		DealerPhone: dealerPhone,
		OrderDate:   time.Now(),
		Status:      models.OrderStatusPending,
		Items:       cart.Items(),
		TotalPrice:  cart.TotalPrice(),
		TotalLitres: cart.TotalLitres(),
	}

	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// Approve runs the stock-and-ledger reconciliation as one store transaction:
// re-read the order under lock, require PENDING, deduct every line's cartons
// from the matching variant, add the order total to the dealer's balance and
// flip the status. If any line would drive stock negative, nothing is written.
func (s *OrderService) Approve(ctx context.Context, orderID string) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		order, err := tx.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to read order %s: %w", orderID, err)
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != models.OrderStatusPending {
			return fmt.Errorf("%w: order %s is %s", ErrAlreadyProcessed, orderID, order.Status)
		}

		dealer, err := tx.Users().FindByIDForUpdate(ctx, order.DealerID)
		if err != nil {
			return fmt.Errorf("failed to read dealer %s: %w", order.DealerID, err)
		}
		if dealer == nil {
			return ErrUserNotFound
		}

		products := map[string]*models.Product{}
		for _, item := range order.Items {
			if _, seen := products[item.ProductID]; seen {
				continue
			}
			product, err := tx.Products().GetByIDForUpdate(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to read product %s: %w", item.ProductID, err)
			}
			if product == nil {
				// The product was deleted after the order was placed. The
				// dealer is still billed the snapshot total; flagged loudly
				// since no stock can be deducted for this line.
				log.Printf("OrderService.Approve: order %s references missing product %s, skipping stock deduction", orderID, item.ProductID)
				continue
			}
			products[item.ProductID] = product
		}

		// Deduct in memory first so the whole order is validated before any
		// write, including several lines draining the same variant.
		for _, item := range order.Items {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			variant := product.FindVariant(item.VariantSize)
			if variant == nil {
				log.Printf("OrderService.Approve: order %s has no variant %q on product %s, skipping stock deduction", orderID, item.VariantSize, product.Name)
				continue
			}
			newStock := variant.StockCartons - item.CartonQuantity
			if newStock < 0 {
				return fmt.Errorf("%w: %s %s (available: %d, requested: %d)",
					ErrInsufficientStock, product.Name, variant.Size, variant.StockCartons, item.CartonQuantity)
			}
			variant.StockCartons = newStock
		}

		for _, product := range products {
			for i := range product.Variants {
				if err := tx.Products().UpdateVariantStock(ctx, product.Variants[i].ID, product.Variants[i].StockCartons); err != nil {
					return fmt.Errorf("failed to update stock for %s %s: %w", product.Name, product.Variants[i].Size, err)
				}
			}
		}

		newBalance := dealer.CurrentBalance.Add(order.TotalPrice)
		if err := tx.Users().UpdateBalance(ctx, dealer.ID, newBalance); err != nil {
			return fmt.Errorf("failed to update dealer balance: %w", err)
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, models.OrderStatusApproved); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	})
}

// Reject is a plain single-field status flip with no stock or balance side
// effect.
func (s *OrderService) Reject(ctx context.Context, orderID string) error {
	if err := s.store.Orders().UpdateStatus(ctx, orderID, models.OrderStatusRejected); err != nil {
		return fmt.Errorf("failed to reject order %s: %w", orderID, err)
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context, dealerID string) ([]models.Order, error) {
	orders, err := s.store.Orders().GetOrdersByDealerID(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for dealer %s: %w", dealerID, err)
	}
	return orders, nil
}

func (s *OrderService) AllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.Orders().GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// OrderValue is the billed amount for a single line.
func OrderValue(item models.OrderItem) decimal.Decimal {
	return item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.CartonQuantity)))
}
