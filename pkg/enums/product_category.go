package enums

import "fmt"

// ProductCategory represents the canonical product categories supported by the storefront.
type ProductCategory string

const (
	ProductCategoryDesktopPC  ProductCategory = "desktop_pc"
	ProductCategoryAllInOne   ProductCategory = "all_in_one"
	ProductCategoryLaptop     ProductCategory = "laptop"
	ProductCategoryPrebuiltPC ProductCategory = "prebuilt_pc"
	ProductCategoryMonitor    ProductCategory = "monitor"
	ProductCategoryAccessory  ProductCategory = "accessory"
	ProductCategorySoftware   ProductCategory = "software"
	ProductCategoryNetwork    ProductCategory = "network"
)

var validProductCategories = []ProductCategory{
	ProductCategoryDesktopPC,
	ProductCategoryAllInOne,
	ProductCategoryLaptop,
	ProductCategoryPrebuiltPC,
	ProductCategoryMonitor,
	ProductCategoryAccessory,
	ProductCategorySoftware,
	ProductCategoryNetwork,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// CollectionForTag routes a catalog tag to its backing collection. Tags that
// parse as a PartType live in pc_parts, everything else in products.
func CollectionForTag(tag string) Collection {
	if _, err := ParsePartType(tag); err == nil {
		return CollectionPCParts
	}
	return CollectionProducts
}
