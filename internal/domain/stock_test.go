package domain

import "testing"

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name      string
		left      int
		threshold int
		want      StockLevel
	}{
		{name: "zero is empty", left: 0, threshold: 5, want: StockEmpty},
		{name: "one is low", left: 1, threshold: 5, want: StockLow},
		{name: "at threshold is low", left: 5, threshold: 5, want: StockLow},
		{name: "above threshold is normal", left: 6, threshold: 5, want: StockNormal},
		{name: "custom threshold boundary", left: 10, threshold: 10, want: StockLow},
		{name: "custom threshold above", left: 11, threshold: 10, want: StockNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := Slot{SlotNumber: 1, MedicineName: "Aspirin", TotalTablets: 30, TabletsLeft: tt.left}
			if got := ClassifyStock(slot, tt.threshold); got != tt.want {
				t.Errorf("ClassifyStock(left=%d, threshold=%d) = %v, want %v",
					tt.left, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestClassifyStockDefaultThreshold(t *testing.T) {
	slot := Slot{SlotNumber: 1, MedicineName: "Aspirin", TotalTablets: 30, TabletsLeft: 5}

	// Non-positive threshold falls back to the default (5)
	if got := ClassifyStock(slot, 0); got != StockLow {
		t.Errorf("ClassifyStock(threshold=0) = %v, want low via default threshold", got)
	}
}
