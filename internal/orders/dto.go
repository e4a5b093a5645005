package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

// OrderDTO is the API shape of an order.
type OrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	FullName    string            `json:"full_name"`
	PhoneNumber string            `json:"phone_number"`
	Wilaya      string            `json:"wilaya"`
	Address     *string           `json:"address,omitempty"`
	Items       types.OrderItems  `json:"items"`
	TotalPrice  decimal.Decimal   `json:"total_price"`
	Status      enums.OrderStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PageDTO is one page of orders with the cursor for the next page.
type PageDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}

// StatsDTO summarizes the admin dashboard counters.
type StatsDTO struct {
	PendingCount   int64           `json:"pending_count"`
	DeliveredCount int64           `json:"delivered_count"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// NewOrderDTO maps a stored order to its API shape.
func NewOrderDTO(order *models.Order) OrderDTO {
	return OrderDTO{
		ID:          order.ID,
		FullName:    order.FullName,
		PhoneNumber: order.PhoneNumber,
		Wilaya:      order.Wilaya,
		Address:     order.Address,
		Items:       order.Items,
		TotalPrice:  order.TotalPrice,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
