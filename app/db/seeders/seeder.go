package seeders

import (
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hatim/makmanager/app/models"
)

// DBSeed creates the operator's admin account and a small lubricant catalog
// to work against. Safe to re-run: existing rows are left alone.
func DBSeed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedProducts(db)
}

func seedAdmin(db *gorm.DB) error {
	hashPass, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:         uuid.New().String(),
		Name:       "Distributor Admin",
		Email:      "admin@makmanager.local",
		Phone:      "9999999999",
		Password:   string(hashPass),
		Role:       models.RoleAdmin,
		IsApproved: true,
	}
	result := db.FirstOrCreate(&admin, models.User{Email: admin.Email})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Seeded admin account %s (change the default password!)", admin.Email)
	}
	return nil
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:     "Premium Engine Oil 20W-40",
			Category: "Engine Oil",
			Variants: []models.Variant{
				{Size: "1L", UnitsPerCarton: 12, PricePerCarton: decimal.NewFromInt(3600), MRP: decimal.NewFromInt(420), StockCartons: 40},
				{Size: "900ml", UnitsPerCarton: 12, PricePerCarton: decimal.NewFromInt(3240), MRP: decimal.NewFromInt(380), StockCartons: 25},
				{Size: "5L", UnitsPerCarton: 4, PricePerCarton: decimal.NewFromInt(5800), MRP: decimal.NewFromInt(1650), StockCartons: 10},
			},
		},
		{
			Name:     "Hydraulic Oil 68",
			Category: "Hydraulic Oil",
			Variants: []models.Variant{
				{Size: "5L", UnitsPerCarton: 4, PricePerCarton: decimal.NewFromInt(4400), MRP: decimal.NewFromInt(1250), StockCartons: 15},
				{Size: "26L", UnitsPerCarton: 1, PricePerCarton: decimal.NewFromInt(5200), MRP: decimal.NewFromInt(5900), StockCartons: 8},
			},
		},
		{
			Name:     "Multipurpose Grease MP3",
			Category: "Grease",
			Variants: []models.Variant{
				{Size: "500g", UnitsPerCarton: 24, PricePerCarton: decimal.NewFromInt(4080), MRP: decimal.NewFromInt(210), StockCartons: 20},
			},
		},
	}

	for i := range products {
		products[i].ID = uuid.New().String()
		for j := range products[i].Variants {
			products[i].Variants[j].ID = uuid.New().String()
			products[i].Variants[j].ProductID = products[i].ID
			products[i].Variants[j].Position = j
		}
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d sample products", len(products))
	return nil
}
