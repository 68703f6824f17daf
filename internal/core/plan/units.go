package plan

import (
	"math"
	"strings"
)

// UnitFamily classifies a unit as mass, volume or other. It decides whether
// quantities of the same ingredient may merge across differing units.
type UnitFamily string

const (
	FamilyMass   UnitFamily = "mass"
	FamilyVolume UnitFamily = "volume"
	FamilyOther  UnitFamily = "other"
)

// Canonical culinary spoon units.
const (
	UnitTablespoon = "c. à s."
	UnitTeaspoon   = "c. à c."
)

// unitSynonyms maps French unit spellings and abbreviations to their
// canonical unit.
var unitSynonyms = map[string]string{
	"gramme": "g", "grammes": "g", "gr": "g", "g": "g",
	"kilogramme": "kg", "kilogrammes": "kg", "kilo": "kg", "kilos": "kg", "kg": "kg",
	"millilitre": "ml", "millilitres": "ml", "ml": "ml",
	"centilitre": "cl", "centilitres": "cl", "cl": "cl",
	"décilitre": "dl", "décilitres": "dl", "dl": "dl",
	"litre": "l", "litres": "l", "l": "l",
	"cuillère à soupe": UnitTablespoon, "cuillères à soupe": UnitTablespoon,
	"c. à s.": UnitTablespoon, "c.à.s.": UnitTablespoon, "cas": UnitTablespoon, "cs": UnitTablespoon,
	"cuillère à café": UnitTeaspoon, "cuillères à café": UnitTeaspoon,
	"c. à c.": UnitTeaspoon, "c.à.c.": UnitTeaspoon, "cac": UnitTeaspoon, "cc": UnitTeaspoon,
}

// NormalizeUnit maps a free-text unit to its canonical form and family.
// Unrecognized units pass through lower-cased and trimmed, as family other.
func NormalizeUnit(raw string) (string, UnitFamily) {
	u := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := unitSynonyms[u]; ok {
		return canonical, familyOf(canonical)
	}
	return u, FamilyOther
}

func familyOf(canonical string) UnitFamily {
	switch canonical {
	case "g", "kg":
		return FamilyMass
	case "ml", "cl", "dl", "l":
		return FamilyVolume
	default:
		return FamilyOther
	}
}

// ToBase converts a quantity to its base unit: grams for mass, milliliters
// for volume. Units of family other pass through unchanged; they never merge
// across differing units, so no conversion is defined.
func ToBase(quantity float64, canonical string) float64 {
	switch canonical {
	case "kg":
		return quantity * 1000
	case "cl":
		return quantity * 10
	case "dl":
		return quantity * 100
	case "l":
		return quantity * 1000
	default:
		return quantity
	}
}

// ToDisplay picks the largest unit that keeps the displayed number readable.
// The thresholds are fixed presentation constants.
func ToDisplay(baseQuantity float64, family UnitFamily) (float64, string) {
	if family == FamilyMass {
		if baseQuantity >= 1000 {
			return baseQuantity / 1000, "kg"
		}
		return baseQuantity, "g"
	}
	// volume
	if baseQuantity >= 1000 {
		return baseQuantity / 1000, "l"
	}
	if baseQuantity >= 100 {
		return baseQuantity / 100, "cl"
	}
	return baseQuantity, "ml"
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
