package services_test

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
)

// memStore is an in-memory repositories.Store. Transaction clones the data
// set, runs the callback against the clone and swaps it in only on success,
// so all-or-nothing behavior can be asserted directly.
type memStore struct {
	data *memData
}

type memData struct {
	products map[string]models.Product
	users    map[string]models.User
	orders   map[string]models.Order
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		products: make(map[string]models.Product),
		users:    make(map[string]models.User),
		orders:   make(map[string]models.Order),
	}}
}

func (d *memData) clone() *memData {
	c := &memData{
		products: make(map[string]models.Product, len(d.products)),
		users:    make(map[string]models.User, len(d.users)),
		orders:   make(map[string]models.Order, len(d.orders)),
	}
	for id, p := range d.products {
		c.products[id] = copyProduct(p)
	}
	for id, u := range d.users {
		c.users[id] = u
	}
	for id, o := range d.orders {
		c.orders[id] = copyOrder(o)
	}
	return c
}

func copyProduct(p models.Product) models.Product {
	variants := make([]models.Variant, len(p.Variants))
	copy(variants, p.Variants)
	p.Variants = variants
	return p
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (s *memStore) Products() repositories.ProductRepositoryImpl { return &memProducts{s.data} }
func (s *memStore) Users() repositories.UserRepositoryImpl       { return &memUsers{s.data} }
func (s *memStore) Orders() repositories.OrderRepositoryImpl     { return &memOrders{s.data} }

func (s *memStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	clone := s.data.clone()
	if err := fn(&memStore{data: clone}); err != nil {
		return err
	}
	*s.data = *clone
	return nil
}

// Direct fixture helpers.

func (s *memStore) putProduct(p models.Product) { s.data.products[p.ID] = copyProduct(p) }
func (s *memStore) putUser(u models.User)       { s.data.users[u.ID] = u }
func (s *memStore) putOrder(o models.Order)     { s.data.orders[o.ID] = copyOrder(o) }

func (s *memStore) product(id string) models.Product { return copyProduct(s.data.products[id]) }
func (s *memStore) user(id string) models.User       { return s.data.users[id] }
func (s *memStore) order(id string) models.Order     { return copyOrder(s.data.orders[id]) }

type memProducts struct {
	data *memData
}

func (m *memProducts) GetProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, len(m.data.products))
	for _, p := range m.data.products {
		products = append(products, copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := m.data.products[id]
	if !ok {
		return nil, nil
	}
	cp := copyProduct(p)
	return &cp, nil
}

func (m *memProducts) GetByIDForUpdate(ctx context.Context, id string) (*models.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *memProducts) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
		product.Variants[i].Position = i
	}
	m.data.products[product.ID] = copyProduct(*product)
	return nil
}

func (m *memProducts) Replace(ctx context.Context, product *models.Product) error {
	return m.Create(ctx, product)
}

func (m *memProducts) Delete(ctx context.Context, id string) error {
	delete(m.data.products, id)
	return nil
}

func (m *memProducts) UpdateVariantStock(ctx context.Context, variantID string, stockCartons int) error {
	for pid, p := range m.data.products {
		for i := range p.Variants {
			if p.Variants[i].ID == variantID {
				p.Variants[i].StockCartons = stockCartons
				m.data.products[pid] = p
				return nil
			}
		}
	}
	return nil
}

func (m *memProducts) UpdateVariantPricing(ctx context.Context, variantID string, pricePerCarton, mrp decimal.Decimal) error {
	for pid, p := range m.data.products {
		for i := range p.Variants {
			if p.Variants[i].ID == variantID {
				p.Variants[i].PricePerCarton = pricePerCarton
				p.Variants[i].MRP = mrp
				m.data.products[pid] = p
				return nil
			}
		}
	}
	return nil
}

type memUsers struct {
	data *memData
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleDealer
	}
	m.data.users[user.ID] = *user
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) FindByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return m.FindByID(ctx, id)
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.data.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.data.users))
	for _, u := range m.data.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (m *memUsers) UpdateProfile(ctx context.Context, id, name, address, city string) error {
	u, ok := m.data.users[id]
	if !ok {
		return nil
	}
	u.Name, u.Address, u.City = name, address, city
	m.data.users[id] = u
	return nil
}

func (m *memUsers) SetApproved(ctx context.Context, id string) error {
	u, ok := m.data.users[id]
	if !ok {
		return nil
	}
	u.IsApproved = true
	m.data.users[id] = u
	return nil
}

func (m *memUsers) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	u, ok := m.data.users[id]
	if !ok {
		return nil
	}
	u.CurrentBalance = balance
	m.data.users[id] = u
	return nil
}

type memOrders struct {
	data *memData
}

func (m *memOrders) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	m.data.orders[order.ID] = copyOrder(*order)
	return nil
}

func (m *memOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := m.data.orders[id]
	if !ok {
		return nil, nil
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (m *memOrders) GetByIDForUpdate(ctx context.Context, id string) (*models.Order, error) {
	return m.GetByID(ctx, id)
}

func (m *memOrders) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(m.data.orders))
	for _, o := range m.data.orders {
		orders = append(orders, copyOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	return orders, nil
}

func (m *memOrders) GetOrdersByDealerID(ctx context.Context, dealerID string) ([]models.Order, error) {
	all, _ := m.GetAllOrders(ctx)
	var orders []models.Order
	for _, o := range all {
		if o.DealerID == dealerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memOrders) GetApprovedOrders(ctx context.Context) ([]models.Order, error) {
	all, _ := m.GetAllOrders(ctx)
	var orders []models.Order
	for _, o := range all {
		if o.Status == models.OrderStatusApproved {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, orderID, status string) error {
	o, ok := m.data.orders[orderID]
	if !ok {
		return nil
	}
	o.Status = status
	m.data.orders[orderID] = o
	return nil
}
