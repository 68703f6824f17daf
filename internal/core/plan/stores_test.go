package plan

import "testing"

func TestCompareStores(t *testing.T) {
	comparison := CompareStores(100)

	if len(comparison.Stores) != 4 {
		t.Fatalf("got %d stores, want 4", len(comparison.Stores))
	}

	wantOrder := []struct {
		name  string
		price float64
		value float64
	}{
		{"Lidl", 80, 8.8},
		{"Leclerc", 90, 8.9},
		{"Auchan", 100, 8.3},
		{"Carrefour", 105, 7.4},
	}

	for i, want := range wantOrder {
		got := comparison.Stores[i]
		if got.Name != want.name {
			t.Errorf("position %d = %q, want %q", i, got.Name, want.name)
		}
		if got.EstimatedPrice != want.price {
			t.Errorf("%s price = %v, want %v", want.name, got.EstimatedPrice, want.price)
		}
		if got.ValueScore != want.value {
			t.Errorf("%s value = %v, want %v", want.name, got.ValueScore, want.value)
		}
	}

	if comparison.BestValue != "Leclerc" {
		t.Errorf("best value = %q, want Leclerc", comparison.BestValue)
	}
}

func TestCompareStoresZeroTotal(t *testing.T) {
	comparison := CompareStores(0)

	for _, store := range comparison.Stores {
		if store.EstimatedPrice != 0 {
			t.Errorf("%s price = %v, want 0", store.Name, store.EstimatedPrice)
		}
	}
	if comparison.BestValue == "" {
		t.Error("best value missing for zero total")
	}
}
