package domain

// DefaultLowStockThreshold is the remaining count at or below which a
// slot is flagged as low.
const DefaultLowStockThreshold = 5

// StockLevel classifies a slot's remaining tablet count.
type StockLevel string

const (
	StockEmpty  StockLevel = "empty"
	StockLow    StockLevel = "low"
	StockNormal StockLevel = "normal"
)

// ClassifyStock returns the stock level of a slot against the threshold.
// A non-positive threshold falls back to the default.
func ClassifyStock(slot Slot, threshold int) StockLevel {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	switch {
	case slot.TabletsLeft == 0:
		return StockEmpty
	case slot.TabletsLeft <= threshold:
		return StockLow
	default:
		return StockNormal
	}
}
