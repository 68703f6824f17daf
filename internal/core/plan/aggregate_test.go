package plan

import (
	"reflect"
	"testing"
)

func recipeWith(price float64, ingredients ...Ingredient) Recipe {
	return Recipe{
		Name:           "Plat de test",
		Category:       BudgetEconomique,
		Ingredients:    ingredients,
		PricePerPerson: price,
	}
}

func findItem(t *testing.T, list ShoppingListResponse, category ShoppingCategory, name string) ShoppingItem {
	t.Helper()
	for _, item := range list.Categories[category] {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("item %q not found in category %q", name, category)
	return ShoppingItem{}
}

func TestBuildShoppingListMergesMassAcrossUnits(t *testing.T) {
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Farine", Quantity: 200, Unit: "g", Category: CategoryEpicerie},
		),
		recipeWith(0,
			Ingredient{Name: "farine ", Quantity: 0.3, Unit: "kg", Category: CategoryEpicerie},
		),
	}

	list := BuildShoppingList(recipes, 2)

	item := findItem(t, list, CategoryEpicerie, "Farine")
	if item.TotalQuantity != 500 || item.Unit != "g" {
		t.Errorf("merged flour = %v %s, want 500 g", item.TotalQuantity, item.Unit)
	}
	if len(list.Categories[CategoryEpicerie]) != 1 {
		t.Errorf("expected a single merged item, got %d", len(list.Categories[CategoryEpicerie]))
	}
}

func TestBuildShoppingListVolumePromotion(t *testing.T) {
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Lait", Quantity: 50, Unit: "cl", Category: CategoryProduitsLaitiers},
			Ingredient{Name: "Lait", Quantity: 500, Unit: "ml", Category: CategoryProduitsLaitiers},
		),
	}

	list := BuildShoppingList(recipes, 1)

	item := findItem(t, list, CategoryProduitsLaitiers, "Lait")
	if item.TotalQuantity != 1 || item.Unit != "l" {
		t.Errorf("merged milk = %v %s, want 1 l", item.TotalQuantity, item.Unit)
	}
}

func TestBuildShoppingListOtherUnitsNeverMerge(t *testing.T) {
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Oeuf", Quantity: 3, Unit: "pièces", Category: CategoryAutre},
			Ingredient{Name: "Oeuf", Quantity: 2, Unit: "pièces", Category: CategoryAutre},
			Ingredient{Name: "Sel", Quantity: 1, Unit: "pincée", Category: CategoryCondiments},
			Ingredient{Name: "Sel", Quantity: 2, Unit: "pincées", Category: CategoryCondiments},
		),
	}

	list := BuildShoppingList(recipes, 1)

	egg := findItem(t, list, CategoryAutre, "Oeuf")
	if egg.TotalQuantity != 5 || egg.Unit != "pièces" {
		t.Errorf("eggs = %v %s, want 5 pièces", egg.TotalQuantity, egg.Unit)
	}

	// "pincée" and "pincées" are distinct units of family other, so the two
	// salt lines stay separate.
	if got := len(list.Categories[CategoryCondiments]); got != 2 {
		t.Errorf("expected 2 separate salt items, got %d", got)
	}
}

func TestBuildShoppingListCommutative(t *testing.T) {
	a := recipeWith(4.5,
		Ingredient{Name: "Riz", Quantity: 300, Unit: "g", Category: CategoryEpicerie},
		Ingredient{Name: "Tomate", Quantity: 4, Unit: "pièces", Category: CategoryFruitsLegumes},
	)
	b := recipeWith(6.2,
		Ingredient{Name: "Riz", Quantity: 0.2, Unit: "kg", Category: CategoryEpicerie},
	)

	forward := BuildShoppingList([]Recipe{a, b}, 3)
	backward := BuildShoppingList([]Recipe{b, a}, 3)

	if forward.TotalEstimatedPrice != backward.TotalEstimatedPrice {
		t.Errorf("total differs by order: %v vs %v",
			forward.TotalEstimatedPrice, backward.TotalEstimatedPrice)
	}
	if !reflect.DeepEqual(forward.Categories, backward.Categories) {
		t.Errorf("categories differ by recipe order:\n%v\nvs\n%v",
			forward.Categories, backward.Categories)
	}
}

func TestBuildShoppingListAllCategoriesAlwaysPresent(t *testing.T) {
	list := BuildShoppingList(nil, 4)

	if len(list.Categories) != len(ShoppingCategories) {
		t.Fatalf("expected %d categories, got %d", len(ShoppingCategories), len(list.Categories))
	}
	for _, cat := range ShoppingCategories {
		items, ok := list.Categories[cat]
		if !ok {
			t.Errorf("category %q missing", cat)
		}
		if items == nil {
			t.Errorf("category %q is nil, want empty slice", cat)
		}
	}
	if list.TotalEstimatedPrice != 0 {
		t.Errorf("empty list total = %v, want 0", list.TotalEstimatedPrice)
	}
}

func TestBuildShoppingListTotalPrice(t *testing.T) {
	recipes := []Recipe{
		recipeWith(3.5),
		recipeWith(8.75),
		recipeWith(12.25),
	}

	list := BuildShoppingList(recipes, 4)

	if want := 98.0; list.TotalEstimatedPrice != want {
		t.Errorf("total = %v, want %v", list.TotalEstimatedPrice, want)
	}
}

func TestBuildShoppingListFirstSpellingAndCategoryWin(t *testing.T) {
	// Same merge key with diverging display spelling and category: the first
	// occurrence decides both. The category conflict is logged, not dropped.
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Crème fraîche", Quantity: 20, Unit: "cl", Category: CategoryProduitsLaitiers},
		),
		recipeWith(0,
			Ingredient{Name: "CRÈME FRAÎCHE", Quantity: 10, Unit: "cl", Category: CategoryEpicerie},
		),
	}

	list := BuildShoppingList(recipes, 2)

	item := findItem(t, list, CategoryProduitsLaitiers, "Crème fraîche")
	if item.TotalQuantity != 3 || item.Unit != "cl" {
		t.Errorf("merged cream = %v %s, want 3 cl", item.TotalQuantity, item.Unit)
	}
	if got := len(list.Categories[CategoryEpicerie]); got != 0 {
		t.Errorf("conflicting category received %d items, want 0", got)
	}
}

func TestBuildShoppingListUnknownCategoryFallsBackToAutre(t *testing.T) {
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Safran", Quantity: 1, Unit: "pincée", Category: "exotique"},
		),
	}

	list := BuildShoppingList(recipes, 1)

	item := findItem(t, list, CategoryAutre, "Safran")
	if item.Category != CategoryAutre {
		t.Errorf("item category = %q, want %q", item.Category, CategoryAutre)
	}
}

func TestBuildShoppingListFrenchCollation(t *testing.T) {
	recipes := []Recipe{
		recipeWith(0,
			Ingredient{Name: "Poire", Quantity: 2, Unit: "pièces", Category: CategoryFruitsLegumes},
			Ingredient{Name: "Échalote", Quantity: 3, Unit: "pièces", Category: CategoryFruitsLegumes},
			Ingredient{Name: "Fenouil", Quantity: 1, Unit: "pièce", Category: CategoryFruitsLegumes},
		),
	}

	list := BuildShoppingList(recipes, 1)

	var names []string
	for _, item := range list.Categories[CategoryFruitsLegumes] {
		names = append(names, item.Name)
	}

	// Byte order would push "Échalote" past "Poire"; French collation keeps É
	// with E.
	want := []string{"Échalote", "Fenouil", "Poire"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sorted names = %v, want %v", names, want)
	}
}
