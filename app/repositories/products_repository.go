package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hatim/makmanager/app/models"
)

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByIDForUpdate locks the product row for the duration of the enclosing
	// transaction. Only meaningful inside Store.Transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Replace overwrites the whole document: product fields and the entire
	// variant list.
	Replace(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	UpdateVariantStock(ctx context.Context, variantID string, stockCartons int) error
	UpdateVariantPricing(ctx context.Context, variantID string, pricePerCarton, mrp decimal.Decimal) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	err = p.db.WithContext(ctx).
		Order("position ASC").
		Find(&product.Variants, "product_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
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
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Replace(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Variant{}, "product_id = ?", product.ID).Error; err != nil {
			return err
		}
		for i := range product.Variants {
			if product.Variants[i].ID == "" {
				product.Variants[i].ID = uuid.New().String()
			}
			product.Variants[i].ProductID = product.ID
			product.Variants[i].Position = i
		}
		return tx.Save(product).Error
	})
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Variant{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

func (p *productRepository) UpdateVariantStock(ctx context.Context, variantID string, stockCartons int) error {
	return p.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ?", variantID).
		Update("stock_cartons", stockCartons).Error
}

func (p *productRepository) UpdateVariantPricing(ctx context.Context, variantID string, pricePerCarton, mrp decimal.Decimal) error {
	return p.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ?", variantID).
		Updates(map[string]interface{}{"price_per_carton": pricePerCarton, "mrp": mrp}).Error
}
