package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// EffectivePrice returns the price a buyer actually pays. An offer price only
// wins when the offer flag is set and the discounted value is positive and
// strictly below the list price.
func EffectivePrice(price decimal.Decimal, isOffer bool, offerPrice *decimal.Decimal) decimal.Decimal {
	if !isOffer || offerPrice == nil {
		return price
	}
	if offerPrice.IsPositive() && offerPrice.LessThan(price) {
		return *offerPrice
	}
	return price
}

// HasValidOffer reports whether the offer predicate holds.
func HasValidOffer(price decimal.Decimal, isOffer bool, offerPrice *decimal.Decimal) bool {
	return isOffer && offerPrice != nil && offerPrice.IsPositive() && offerPrice.LessThan(price)
}

// StockLabel maps a quantity onto the storefront display label.
func StockLabel(stock int) string {
	switch enums.StockSeverityFor(stock) {
	case enums.StockSeverityOut:
		return "Out of stock"
	case enums.StockSeverityLow:
		return "Low stock"
	default:
		return "In stock"
	}
}

// TagAll is the pseudo tag that selects every item across both collections.
const TagAll = "all"

// FilterByTag returns the items whose tag matches. TagAll matches every
// item. Ordering is preserved.
func FilterByTag(items []ItemDTO, tag string) []ItemDTO {
	if tag == TagAll {
		return items
	}
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		if item.Tag == tag {
			out = append(out, item)
		}
	}
	return out
}

// FilterOffers returns the items with a currently valid offer.
func FilterOffers(items []ItemDTO) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		if HasValidOffer(item.Price, item.IsOffer, item.OfferPrice) {
			out = append(out, item)
		}
	}
	return out
}

// GroupByTag buckets items per tag for the admin console. Groups come back
// sorted by tag name; items keep their incoming order.
func GroupByTag(items []ItemDTO) []TagGroupDTO {
	buckets := make(map[string][]ItemDTO)
	for _, item := range items {
		buckets[item.Tag] = append(buckets[item.Tag], item)
	}

	tags := make([]string, 0, len(buckets))
	for tag := range buckets {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	groups := make([]TagGroupDTO, 0, len(tags))
	for _, tag := range tags {
		group := TagGroupDTO{
			Tag:        tag,
			Collection: enums.CollectionForTag(tag),
			Items:      buckets[tag],
			Count:      len(buckets[tag]),
		}
		for _, item := range group.Items {
			switch enums.StockSeverityFor(item.Stock) {
			case enums.StockSeverityOut:
				group.OutOfStock++
			case enums.StockSeverityLow:
				group.LowStock++
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// SortByEffectivePriceAsc orders items cheapest first, which is how the
// build configurator lists per-slot candidates.
func SortByEffectivePriceAsc(items []ItemDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectivePrice.LessThan(items[j].EffectivePrice)
	})
}
