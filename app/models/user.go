package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin  = "admin"
	RoleDealer = "dealer"
)

type User struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name           string          `gorm:"size:100" json:"name"`
	Email          string          `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Address        string          `gorm:"size:255" json:"address"`
	City           string          `gorm:"size:100" json:"city"`
	GSTNumber      string          `gorm:"size:20" json:"gst_number"`
	Password       string          `gorm:"size:255;not null" json:"-"`
	Role           string          `gorm:"size:20;default:'dealer';not null" json:"role"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"current_balance"`
	IsApproved     bool            `gorm:"default:false" json:"is_approved"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CanTransact reports whether the account has passed the admin approval gate.
// Admins are implicitly approved.
func (u *User) CanTransact() bool {
	return u.Role == RoleAdmin || u.IsApproved
}
