package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

// Order captures a checkout submission. Items is a frozen snapshot of the
// cart at submission time.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName    string            `gorm:"column:full_name;not null"`
	PhoneNumber string            `gorm:"column:phone_number;not null"`
	Wilaya      string            `gorm:"column:wilaya;not null"`
	Address     *string           `gorm:"column:address"`
	Items       types.OrderItems  `gorm:"column:items;type:jsonb;not null"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:pending;index"`
	CartToken   *string           `gorm:"column:cart_token"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
