package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// Line is one entry in a cart snapshot. Unit price is captured at add time;
// checkout re-reads the catalog before charging.
type Line struct {
	ItemID     int64            `json:"item_id"`
	Collection enums.Collection `json:"collection"`
	Name       string           `json:"name"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	Quantity   int              `json:"quantity"`
	ImageURL   *string          `json:"image_url,omitempty"`
}

// Snapshot is the persisted cart state for one token.
type Snapshot struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Snapshot) findLine(collection enums.Collection, itemID int64) int {
	for i := range s.Lines {
		if s.Lines[i].Collection == collection && s.Lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// CartDTO is the API shape of a cart with derived totals.
type CartDTO struct {
	Token         string          `json:"token"`
	Lines         []LineDTO       `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LineDTO is one cart entry with its extended line total.
type LineDTO struct {
	ItemID     int64            `json:"item_id"`
	Collection enums.Collection `json:"collection"`
	Name       string           `json:"name"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	Quantity   int              `json:"quantity"`
	LineTotal  decimal.Decimal  `json:"line_total"`
	ImageURL   *string          `json:"image_url,omitempty"`
}

// NewCartDTO computes totals from a snapshot.
func NewCartDTO(snapshot *Snapshot) *CartDTO {
	dto := &CartDTO{
		Token:     snapshot.Token,
		Lines:     make([]LineDTO, 0, len(snapshot.Lines)),
		Subtotal:  decimal.Zero,
		UpdatedAt: snapshot.UpdatedAt,
	}
	for _, line := range snapshot.Lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		dto.Lines = append(dto.Lines, LineDTO{
			ItemID:     line.ItemID,
			Collection: line.Collection,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			LineTotal:  lineTotal,
			ImageURL:   line.ImageURL,
		})
		dto.TotalQuantity += line.Quantity
		dto.Subtotal = dto.Subtotal.Add(lineTotal)
	}
	return dto
}
