package plan

// BudgetCategory is one of the three fixed recipe price tiers.
type BudgetCategory string

const (
	BudgetEconomique BudgetCategory = "economique" // < 5€/person
	BudgetGourmand   BudgetCategory = "gourmand"   // 5–10€/person
	BudgetPlaisir    BudgetCategory = "plaisir"    // > 10€/person
)

// TimeFilter constrains the preparation time of generated recipes.
type TimeFilter string

const (
	TimeQuick  TimeFilter = "quick"  // < 20 min
	TimeMedium TimeFilter = "medium" // 20–30 min
	TimeLong   TimeFilter = "long"   // > 60 min
	TimeAny    TimeFilter = "any"
)

// ShoppingCategory is one of the nine fixed grocery-aisle buckets.
type ShoppingCategory string

const (
	CategoryFruitsLegumes    ShoppingCategory = "fruits-legumes"
	CategoryViandesPoissons  ShoppingCategory = "viandes-poissons"
	CategoryProduitsLaitiers ShoppingCategory = "produits-laitiers"
	CategoryEpicerie         ShoppingCategory = "epicerie"
	CategoryBoulangerie      ShoppingCategory = "boulangerie"
	CategorySurgeles         ShoppingCategory = "surgeles"
	CategoryBoissons         ShoppingCategory = "boissons"
	CategoryCondiments       ShoppingCategory = "condiments"
	CategoryAutre            ShoppingCategory = "autre"
)

// ShoppingCategories lists all nine buckets. Every ShoppingListResponse
// carries every one of them, empty or not.
var ShoppingCategories = []ShoppingCategory{
	CategoryFruitsLegumes,
	CategoryViandesPoissons,
	CategoryProduitsLaitiers,
	CategoryEpicerie,
	CategoryBoulangerie,
	CategorySurgeles,
	CategoryBoissons,
	CategoryCondiments,
	CategoryAutre,
}

// Nutrition is a per-recipe nutrition snapshot.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

// Ingredient is owned by its parent recipe. Unit is free text, not yet
// normalized.
type Ingredient struct {
	Name     string           `json:"name"`
	Quantity float64          `json:"quantity"`
	Unit     string           `json:"unit"`
	Category ShoppingCategory `json:"category"`
}

// Recipe is an immutable generation result. It lives for the duration of one
// HTTP exchange; only name and category are optionally persisted for history.
type Recipe struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Category        BudgetCategory `json:"category"`
	PreparationTime int            `json:"preparationTime"`
	Ingredients     []Ingredient   `json:"ingredients"`
	Steps           []string       `json:"steps"`
	PricePerPerson  float64        `json:"pricePerPerson"`
	Nutrition       Nutrition      `json:"nutrition"`
}

// CategoryDistribution is the number of meals requested per budget tier.
type CategoryDistribution struct {
	Economique int `json:"economique"`
	Gourmand   int `json:"gourmand"`
	Plaisir    int `json:"plaisir"`
}

// Total returns the sum over the three tiers.
func (d CategoryDistribution) Total() int {
	return d.Economique + d.Gourmand + d.Plaisir
}

// GenerateRequest carries the constraints for a batch generation.
// Distribution totals are validated by the HTTP layer before this stage.
type GenerateRequest struct {
	MealsCount    int
	Categories    CategoryDistribution
	PersonsCount  int
	ExcludedTags  []string
	TimeFilter    TimeFilter
	Healthy       bool
	PreviousNames []string
}

// RegenerateRequest carries the constraints for regenerating a single recipe.
type RegenerateRequest struct {
	Category      BudgetCategory
	PersonsCount  int
	ExcludedTags  []string
	TimeFilter    TimeFilter
	Healthy       bool
	CurrentName   string
	ExistingNames []string
}

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Name          string           `json:"name"`
	TotalQuantity float64          `json:"totalQuantity"`
	Unit          string           `json:"unit"`
	Category      ShoppingCategory `json:"category"`
}

// ShoppingListResponse maps every shopping category to its aggregated items.
type ShoppingListResponse struct {
	Categories          map[ShoppingCategory][]ShoppingItem `json:"categories"`
	TotalEstimatedPrice float64                             `json:"totalEstimatedPrice"`
}

// HistoryEntry is the (name, category) pair persisted per generated recipe.
type HistoryEntry struct {
	Name     string
	Category string
}
