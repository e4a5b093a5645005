package enums

// LowStockThreshold is the quantity at or below which an in-stock item is
// surfaced as running low.
const LowStockThreshold = 5

// StockSeverity buckets a stock quantity for storefront and admin display.
type StockSeverity string

const (
	StockSeverityOut StockSeverity = "out_of_stock"
	StockSeverityLow StockSeverity = "low_stock"
	StockSeverityOK  StockSeverity = "in_stock"
)

// String implements fmt.Stringer.
func (s StockSeverity) String() string {
	return string(s)
}

// StockSeverityFor classifies a quantity.
func StockSeverityFor(quantity int) StockSeverity {
	switch {
	case quantity <= 0:
		return StockSeverityOut
	case quantity <= LowStockThreshold:
		return StockSeverityLow
	default:
		return StockSeverityOK
	}
}
