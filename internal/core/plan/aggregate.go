package plan

import (
	"sort"
	"strings"

	"recipe-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// aggregatedItem is the transient accumulator for one merge key. It only
// lives for the duration of one BuildShoppingList call.
type aggregatedItem struct {
	name           string // original spelling, first occurrence wins
	baseQuantity   float64
	family         UnitFamily
	normalizedUnit string
	category       ShoppingCategory
}

// BuildShoppingList merges the ingredients of all recipes into a categorized
// shopping list and prices the basket as the sum over recipes of
// pricePerPerson times personsCount. Quantities are taken as generated.
//
// It is total over any well-typed recipe slice, including the empty one, and
// raises no errors.
func BuildShoppingList(recipes []Recipe, personsCount int) ShoppingListResponse {
	items := make(map[string]*aggregatedItem)
	// Insertion order of keys, so equal-name ties stay deterministic.
	var order []string

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			normalizedUnit, family := NormalizeUnit(ing.Unit)
			normalizedName := strings.ToLower(strings.TrimSpace(ing.Name))

			// Mass and volume merge per family; everything else only
			// merges on the exact unit.
			var key string
			if family == FamilyOther {
				key = normalizedName + "|" + normalizedUnit
			} else {
				key = normalizedName + "|" + string(family)
			}

			baseQty := ToBase(ing.Quantity, normalizedUnit)

			if existing, ok := items[key]; ok {
				existing.baseQuantity += baseQty
				if existing.category != normalizeCategory(ing.Category) {
					// First-seen category wins; upstream data is
					// inconsistent, surface it instead of dropping silently.
					common.LogWarn("shopping category conflict on merge key",
						zap.String("ingredient", normalizedName),
						zap.String("kept", string(existing.category)),
						zap.String("ignored", string(ing.Category)),
					)
				}
				continue
			}

			items[key] = &aggregatedItem{
				name:           ing.Name,
				baseQuantity:   baseQty,
				family:         family,
				normalizedUnit: normalizedUnit,
				category:       normalizeCategory(ing.Category),
			}
			order = append(order, key)
		}
	}

	categories := make(map[ShoppingCategory][]ShoppingItem, len(ShoppingCategories))
	for _, cat := range ShoppingCategories {
		categories[cat] = []ShoppingItem{}
	}

	for _, key := range order {
		item := items[key]

		var quantity float64
		var unit string
		if item.family == FamilyMass || item.family == FamilyVolume {
			quantity, unit = ToDisplay(item.baseQuantity, item.family)
		} else {
			quantity = item.baseQuantity
			unit = item.normalizedUnit
		}

		categories[item.category] = append(categories[item.category], ShoppingItem{
			Name:          item.name,
			TotalQuantity: Round2(quantity),
			Unit:          unit,
			Category:      item.category,
		})
	}

	// French collation keeps accented letters next to their base letter
	// instead of after z. A Collator is not safe for concurrent use, so one
	// is built per call.
	frCollator := collate.New(language.French)
	for cat := range categories {
		bucket := categories[cat]
		sort.SliceStable(bucket, func(i, j int) bool {
			return frCollator.CompareString(bucket[i].Name, bucket[j].Name) < 0
		})
	}

	var total float64
	for _, recipe := range recipes {
		total += recipe.PricePerPerson * float64(personsCount)
	}

	return ShoppingListResponse{
		Categories:          categories,
		TotalEstimatedPrice: Round2(total),
	}
}

// normalizeCategory coerces unknown categories to "autre" so the nine-bucket
// invariant holds over arbitrary model output.
func normalizeCategory(cat ShoppingCategory) ShoppingCategory {
	for _, known := range ShoppingCategories {
		if cat == known {
			return cat
		}
	}
	return CategoryAutre
}
