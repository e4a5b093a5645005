package build

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// SlotSelection is one chosen part in a build snapshot.
type SlotSelection struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// Snapshot is the persisted configurator state for one token, keyed by slot.
type Snapshot struct {
	Token     string                           `json:"token"`
	Slots     map[enums.PartType]SlotSelection `json:"slots"`
	UpdatedAt time.Time                        `json:"updated_at"`
}

// SlotDTO is the API shape of one configurator slot.
type SlotDTO struct {
	Slot      enums.PartType `json:"slot"`
	Required  bool           `json:"required"`
	Filled    bool           `json:"filled"`
	Selection *SlotSelection `json:"selection,omitempty"`
}

// BuildDTO is the full configurator view with pricing and completeness.
type BuildDTO struct {
	Token        string          `json:"token"`
	Slots        []SlotDTO       `json:"slots"`
	Total        decimal.Decimal `json:"total"`
	MissingSlots []string        `json:"missing_slots"`
	Complete     bool            `json:"complete"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewBuildDTO renders every known slot in a fixed order, flags missing
// required slots, and totals the chosen parts.
func NewBuildDTO(snapshot *Snapshot) *BuildDTO {
	dto := &BuildDTO{
		Token:        snapshot.Token,
		Slots:        make([]SlotDTO, 0, len(enums.AllPartTypes())),
		Total:        decimal.Zero,
		MissingSlots: []string{},
		UpdatedAt:    snapshot.UpdatedAt,
	}
	for _, slot := range enums.AllPartTypes() {
		entry := SlotDTO{Slot: slot, Required: slot.IsRequired()}
		if selection, ok := snapshot.Slots[slot]; ok {
			chosen := selection
			entry.Filled = true
			entry.Selection = &chosen
			dto.Total = dto.Total.Add(selection.UnitPrice)
		} else if entry.Required {
			dto.MissingSlots = append(dto.MissingSlots, slot.String())
		}
		dto.Slots = append(dto.Slots, entry)
	}
	dto.Complete = len(dto.MissingSlots) == 0
	return dto
}
