package migrations

import (
	"gorm.io/gorm"

	"github.com/hatim/makmanager/app/models"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.Variant{}, &models.Order{}, &models.OrderItem{})
}
