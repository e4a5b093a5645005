package enums

import "fmt"

// Collection identifies which catalog table an item belongs to.
type Collection string

const (
	CollectionProducts Collection = "products"
	CollectionPCParts  Collection = "pc_parts"
)

var validCollections = []Collection{
	CollectionProducts,
	CollectionPCParts,
}

// String implements fmt.Stringer.
func (c Collection) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Collection.
func (c Collection) IsValid() bool {
	for _, candidate := range validCollections {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCollection converts raw input into a Collection.
func ParseCollection(value string) (Collection, error) {
	for _, candidate := range validCollections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid collection %q", value)
}
