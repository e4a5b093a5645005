package enums

import "fmt"

// PartType identifies which build slot a PC component fits.
type PartType string

const (
	PartTypeCPU         PartType = "cpu"
	PartTypeGPU         PartType = "gpu"
	PartTypeMotherboard PartType = "motherboard"
	PartTypeRAM         PartType = "ram"
	PartTypeStorage     PartType = "storage"
	PartTypePSU         PartType = "psu"
	PartTypeCase        PartType = "case"
	PartTypeCooling     PartType = "cooling"
)

var validPartTypes = []PartType{
	PartTypeCPU,
	PartTypeGPU,
	PartTypeMotherboard,
	PartTypeRAM,
	PartTypeStorage,
	PartTypePSU,
	PartTypeCase,
	PartTypeCooling,
}

// requiredPartTypes are the slots a build must fill before it can be
// priced and moved to a cart.
var requiredPartTypes = []PartType{
	PartTypeCPU,
	PartTypeMotherboard,
	PartTypeRAM,
	PartTypeGPU,
	PartTypePSU,
}

// String implements fmt.Stringer.
func (p PartType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PartType.
func (p PartType) IsValid() bool {
	for _, candidate := range validPartTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsRequired reports whether the part type is mandatory in a build.
func (p PartType) IsRequired() bool {
	for _, candidate := range requiredPartTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePartType converts raw input into a PartType.
func ParsePartType(value string) (PartType, error) {
	for _, candidate := range validPartTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid part type %q", value)
}

// AllPartTypes returns every slot in display order.
func AllPartTypes() []PartType {
	out := make([]PartType, len(validPartTypes))
	copy(out, validPartTypes)
	return out
}

// RequiredPartTypes returns the mandatory build slots.
func RequiredPartTypes() []PartType {
	out := make([]PartType, len(requiredPartTypes))
	copy(out, requiredPartTypes)
	return out
}
