package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hatim/makmanager/app/utils/calc"
)

type Product struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:100" json:"category"`
	ImageBase64 string    `gorm:"type:mediumtext" json:"image_base64,omitempty"`
	Variants    []Variant `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Variant struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID      string          `gorm:"size:36;index;not null" json:"-"`
	Size           string          `gorm:"size:50;not null" json:"size"`
	UnitsPerCarton int             `gorm:"not null;default:1" json:"units_per_carton"`
	PricePerCarton decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price_per_carton"`
	MRP            decimal.Decimal `gorm:"type:decimal(16,2)" json:"mrp"`
	StockCartons   int             `gorm:"not null;default:0" json:"stock_cartons"`
	Position       int             `gorm:"not null;default:0" json:"-"`
}

// UnitPrice is the per-piece dealer price derived from the carton rate.
func (v *Variant) UnitPrice() decimal.Decimal {
	if v.UnitsPerCarton <= 0 {
		return decimal.Zero
	}
	return v.PricePerCarton.Div(decimal.NewFromInt(int64(v.UnitsPerCarton)))
}

// LitresInStock converts the carton stock into litres for reporting.
func (v *Variant) LitresInStock() float64 {
	return calc.Litres(v.Size, v.UnitsPerCarton, v.StockCartons)
}

// FindVariant returns the variant whose size label matches exactly, or nil.
func (p *Product) FindVariant(size string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Size == size {
			return &p.Variants[i]
		}
	}
	return nil
}
