package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/utils/calc"
)

// Cart is the per-session line item aggregator. It lives in memory only:
// nothing is persisted until the dealer places the order, and the whole cart
// is dropped once placement succeeds.
type Cart struct {
	items []models.OrderItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends qty cartons of the given variant, folding into an existing
// (product, size) line if present. It refuses any addition whose line total
// would exceed the variant's stock at time of check and reports whether the
// cart changed. The carton price is frozen at add time.
func (c *Cart) AddItem(product *models.Product, variant *models.Variant, qty int) bool {
	if qty <= 0 || qty > variant.StockCartons {
		return false
	}

	for i := range c.items {
		if c.items[i].ProductID == product.ID && c.items[i].VariantSize == variant.Size {
			newTotalQty := c.items[i].CartonQuantity + qty
			if newTotalQty > variant.StockCartons {
				return false
			}
			c.items[i].CartonQuantity = newTotalQty
			return true
		}
	}

	c.items = append(c.items, models.OrderItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		VariantSize:    variant.Size,
		UnitsPerCarton: variant.UnitsPerCarton,
		CartonQuantity: qty,
		PriceAtOrder:   variant.PricePerCarton,
	})
	return true
}

// UpdateQuantity sets a line's carton count; zero or negative removes the
// line. Raising the quantity is validated against the supplied current stock
// so an edit cannot sneak past the add-time check.
func (c *Cart) UpdateQuantity(productID, variantSize string, newQty, stockCartons int) bool {
	for i := range c.items {
		if c.items[i].ProductID != productID || c.items[i].VariantSize != variantSize {
			continue
		}
		if newQty <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
		if newQty > stockCartons {
			return false
		}
		c.items[i].CartonQuantity = newQty
		return true
	}
	return false
}

func (c *Cart) RemoveItem(productID, variantSize string) {
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].VariantSize == variantSize {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy so callers cannot mutate cart state behind the
// aggregator's back.
func (c *Cart) Items() []models.OrderItem {
	items := make([]models.OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.CartonQuantity))))
	}
	return total
}

func (c *Cart) TotalLitres() float64 {
	var total float64
	for _, item := range c.items {
		total += calc.Litres(item.VariantSize, item.UnitsPerCarton, item.CartonQuantity)
	}
	return total
}

// CartStore hands out one cart per authenticated dealer. Carts are confined
// to a session; the mutex only guards the map itself.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*Cart)}
}

func (s *CartStore) Get(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = NewCart()
		s.carts[userID] = cart
	}
	return cart
}

func (s *CartStore) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
