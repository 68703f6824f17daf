package plan

import (
	"math"
	"sort"
)

// GroceryStore is one chain of the static comparison table. Price indices are
// relative to a reference basket (Auchan = 1.00); quality scores are out of
// ten, both taken from published French consumer studies.
type GroceryStore struct {
	Name         string  `json:"name"`
	PriceIndex   float64 `json:"priceIndex"`
	QualityScore float64 `json:"qualityScore"`
	Tagline      string  `json:"tagline"`
}

var groceryStores = []GroceryStore{
	{Name: "Lidl", PriceIndex: 0.80, QualityScore: 7.0, Tagline: "Discounteur, MDD dominante"},
	{Name: "Leclerc", PriceIndex: 0.90, QualityScore: 8.0, Tagline: "Leader prix hypers France"},
	{Name: "Auchan", PriceIndex: 1.00, QualityScore: 8.3, Tagline: "Large gamme, rayon Bio solide"},
	{Name: "Carrefour", PriceIndex: 1.05, QualityScore: 7.8, Tagline: "N°1 mondial, gamme étendue"},
}

// StoreEstimate is the priced view of one chain for a given basket total.
type StoreEstimate struct {
	GroceryStore
	EstimatedPrice float64 `json:"estimatedPrice"`
	ValueScore     float64 `json:"valueScore"`
}

// StoreComparison ranks the chains by estimated basket price, cheapest first.
type StoreComparison struct {
	Stores    []StoreEstimate `json:"stores"`
	BestValue string          `json:"bestValue"`
}

// CompareStores prices the shopping-list total against each chain's index.
// This is a naive estimate for display, not a quote.
func CompareStores(totalEstimatedPrice float64) StoreComparison {
	estimates := make([]StoreEstimate, len(groceryStores))
	for i, store := range groceryStores {
		estimates[i] = StoreEstimate{
			GroceryStore:   store,
			EstimatedPrice: Round2(totalEstimatedPrice * store.PriceIndex),
			ValueScore:     math.Round(store.QualityScore/store.PriceIndex*10) / 10,
		}
	}

	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].EstimatedPrice < estimates[j].EstimatedPrice
	})

	best := estimates[0]
	for _, e := range estimates[1:] {
		if e.ValueScore > best.ValueScore {
			best = e
		}
	}

	return StoreComparison{
		Stores:    estimates,
		BestValue: best.Name,
	}
}
