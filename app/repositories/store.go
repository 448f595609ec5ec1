package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories behind one injected handle. Transaction runs
// the callback against a transaction-scoped Store; every write inside either
// commits as one unit or not at all.
type Store interface {
	Products() ProductRepositoryImpl
	Users() UserRepositoryImpl
	Orders() OrderRepositoryImpl

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db       *gorm.DB
	products ProductRepositoryImpl
	users    UserRepositoryImpl
	orders   OrderRepositoryImpl
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		products: NewProductRepository(db),
		users:    NewUserRepository(db),
		orders:   NewOrderRepository(db),
	}
}

func (s *gormStore) Products() ProductRepositoryImpl { return s.products }
func (s *gormStore) Users() UserRepositoryImpl       { return s.users }
func (s *gormStore) Orders() OrderRepositoryImpl     { return s.orders }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
