package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// OrderItem is the immutable line snapshot taken at checkout. Later catalog
// edits never change what an order recorded.
type OrderItem struct {
	ItemID     int64            `json:"item_id"`
	Collection enums.Collection `json:"collection"`
	Name       string           `json:"name"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	Quantity   int              `json:"quantity"`
	LineTotal  decimal.Decimal  `json:"line_total"`
}

// OrderItems maps to a jsonb column holding the full line snapshot array.
type OrderItems []OrderItem

// Value implements driver.Valuer for the jsonb items column.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	for _, item := range o {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("order item %d: missing name", item.ItemID)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("order item %d: non-positive quantity", item.ItemID)
		}
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner for the jsonb items column.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = OrderItems{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*o = OrderItems{}
		return nil
	}
	return json.Unmarshal(raw, o)
}
