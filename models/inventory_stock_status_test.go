package models

import "testing"

func TestStockStatusBands(t *testing.T) {
	cases := []struct {
		qty  float64
		want string
	}{
		{-3, "vacío"},
		{0, "vacío"},
		{0.5, "crítico"},
		{5, "crítico"},
		{5.1, "bajo"},
		{15, "bajo"},
		{15.1, "normal"},
		{400, "normal"},
	}
	for _, tc := range cases {
		item := InventoryItem{FreeQuantity: tc.qty}
		if got := item.StockStatus(); got != tc.want {
			t.Errorf("StockStatus(%v) = %q, want %q", tc.qty, got, tc.want)
		}
	}
}
