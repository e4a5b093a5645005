package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

// SubmitInput carries a checkout submission for one cart token.
type SubmitInput struct {
	CartToken      string  `json:"-"`
	FullName       string  `json:"full_name"`
	PhoneNumber    string  `json:"phone_number"`
	Wilaya         string  `json:"wilaya"`
	Address        *string `json:"address,omitempty"`
	IdempotencyKey string  `json:"-"`
}

// ResultDTO reports the submission outcome.
type ResultDTO struct {
	OrderID    uuid.UUID           `json:"order_id"`
	Status     enums.OrderStatus   `json:"status"`
	State      enums.CheckoutState `json:"state"`
	Items      types.OrderItems    `json:"items"`
	TotalPrice decimal.Decimal     `json:"total_price"`
}
