package plan

import (
	"fmt"
	"strings"
	"unicode"
)

const maxTagLength = 50

// SanitizeTag trims a free-text exclusion tag to 50 characters and strips
// everything that is not a letter (accents included), digit, whitespace or
// hyphen before it is embedded into the rendered prompt. This only reduces
// the risk of a tag breaking out of its role in the instructions; it is not a
// general security boundary.
func SanitizeTag(tag string) string {
	runes := []rune(strings.TrimSpace(tag))
	if len(runes) > maxTagLength {
		runes = runes[:maxTagLength]
	}
	var sb strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func sanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if clean := SanitizeTag(tag); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func timeConstraint(filter TimeFilter) string {
	switch filter {
	case TimeQuick:
		return "CONTRAINTE DE TEMPS : Toutes les recettes doivent avoir un temps de préparation INFÉRIEUR À 20 MINUTES. Choisir des plats rapides à réaliser."
	case TimeMedium:
		return "CONTRAINTE DE TEMPS : Toutes les recettes doivent avoir un temps de préparation ENTRE 20 ET 30 MINUTES."
	case TimeLong:
		return "CONTRAINTE DE TEMPS : Toutes les recettes doivent avoir un temps de préparation SUPÉRIEUR À 60 MINUTES. Choisir des plats mijotés, braisés ou rôtis."
	default:
		return ""
	}
}

func healthyConstraint(healthy bool) string {
	if !healthy {
		return ""
	}
	return "CONTRAINTE SANTÉ : Les recettes doivent être équilibrées et bonnes pour la santé. Privilégier les légumes frais, protéines maigres (poulet, poisson, légumineuses), grains complets et bonnes graisses (huile d'olive, avocat, noix). Limiter les graisses saturées, le sucre ajouté et les produits ultra-transformés."
}

func exclusionBlock(tags []string) string {
	if len(tags) == 0 {
		return "Aucune exclusion alimentaire."
	}
	return fmt.Sprintf("EXCLUSIONS STRICTES (allergies/intolérances) - NE PAS utiliser ces ingrédients : %s", strings.Join(tags, ", "))
}

func previousNamesBlock(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("RECETTES DÉJÀ PROPOSÉES - NE PAS reproposer ces recettes ni des variantes trop proches : %s", strings.Join(names, ", "))
}

const ingredientSchema = `{
          "name": "Nom de l'ingrédient",
          "quantity": 200,
          "unit": "g" | "ml" | "pièce(s)" | "c. à soupe" | "c. à café" | "pincée(s)",
          "category": "fruits-legumes" | "viandes-poissons" | "produits-laitiers" | "epicerie" | "boulangerie" | "surgeles" | "boissons" | "condiments" | "autre"
        }`

// BuildGeneratePrompt renders the batch-generation instructions. The model is
// told to answer with a single JSON object under the top-level key "recipes"
// and nothing else; the parser still tolerates markdown fences since models
// do not always comply.
func BuildGeneratePrompt(req GenerateRequest) string {
	excluded := sanitizeTags(req.ExcludedTags)

	return fmt.Sprintf(`Tu es un chef cuisinier expert en planification de repas hebdomadaires équilibrés et économiques en France.

Génère exactement %d recettes avec la répartition suivante :
- %d recette(s) "economique" (budget < 5€ par personne)
- %d recette(s) "gourmand" (budget entre 5€ et 10€ par personne)
- %d recette(s) "plaisir" (budget > 10€ par personne)

Nombre de personnes : %d

%s

%s

%s

%s

RÈGLES IMPORTANTES :
1. Adapte toutes les quantités d'ingrédients pour %d personne(s)
2. Varie les types de plats : inclure si possible viandes, poissons, plats végétariens
3. Assure un équilibre nutritionnel global (protéines, glucides complexes, légumes)
4. Les prix doivent être réalistes pour le marché français
5. Les recettes doivent être réalisables par un cuisinier amateur
6. Chaque recette doit avoir entre 5 et 12 ingrédients
7. Chaque recette doit avoir entre 3 et 8 étapes de préparation
8. Classe chaque ingrédient dans sa catégorie de courses
9. La description doit être appétissante et donner envie, en 1 à 2 phrases

Réponds UNIQUEMENT avec un JSON valide (sans markdown, sans backticks, sans texte autour) suivant exactement ce format :
{
  "recipes": [
    {
      "id": "un-id-unique",
      "name": "Nom de la recette",
      "description": "Description appétissante de la recette en 1-2 phrases.",
      "category": "economique" | "gourmand" | "plaisir",
      "preparationTime": 30,
      "ingredients": [
        %s
      ],
      "steps": ["Étape 1...", "Étape 2..."],
      "pricePerPerson": 4.50,
      "nutrition": {
        "calories": 550,
        "proteins": 30,
        "carbs": 45,
        "fats": 20,
        "fiber": 8
      }
    }
  ]
}`,
		req.MealsCount,
		req.Categories.Economique,
		req.Categories.Gourmand,
		req.Categories.Plaisir,
		req.PersonsCount,
		exclusionBlock(excluded),
		previousNamesBlock(req.PreviousNames),
		timeConstraint(req.TimeFilter),
		healthyConstraint(req.Healthy),
		req.PersonsCount,
		ingredientSchema,
	)
}

var budgetRanges = map[BudgetCategory]string{
	BudgetEconomique: "moins de 5€ par personne",
	BudgetGourmand:   "entre 5€ et 10€ par personne",
	BudgetPlaisir:    "plus de 10€ par personne",
}

// BuildRegeneratePrompt renders the single-recipe regeneration instructions,
// expecting a JSON object under the top-level key "recipe".
func BuildRegeneratePrompt(req RegenerateRequest) string {
	excluded := sanitizeTags(req.ExcludedTags)

	exclusions := "Aucune exclusion."
	if len(excluded) > 0 {
		exclusions = fmt.Sprintf("EXCLUSIONS STRICTES : %s", strings.Join(excluded, ", "))
	}

	avoid := req.ExistingNames
	if req.CurrentName != "" {
		avoid = append([]string{req.CurrentName}, avoid...)
	}

	return fmt.Sprintf(`Tu es un chef cuisinier expert. Génère UNE SEULE nouvelle recette de catégorie "%s" (budget : %s).

Nombre de personnes : %d

%s

%s

%s

%s

RÈGLES :
1. Adapte les quantités pour %d personne(s)
2. Prix réaliste pour le marché français
3. Recette réalisable par un amateur
4. Entre 5 et 12 ingrédients, 3 à 8 étapes
5. Équilibre nutritionnel
6. La description doit être appétissante en 1-2 phrases

Réponds UNIQUEMENT avec un JSON valide (sans markdown, sans backticks) :
{
  "recipe": {
    "id": "un-id-unique",
    "name": "Nom de la recette",
    "description": "Description appétissante de la recette en 1-2 phrases.",
    "category": "%s",
    "preparationTime": 30,
    "ingredients": [
      %s
    ],
    "steps": ["Étape 1...", "Étape 2..."],
    "pricePerPerson": 4.50,
    "nutrition": {
      "calories": 550,
      "proteins": 30,
      "carbs": 45,
      "fats": 20,
      "fiber": 8
    }
  }
}`,
		req.Category,
		budgetRanges[req.Category],
		req.PersonsCount,
		exclusions,
		previousNamesBlock(avoid),
		timeConstraint(req.TimeFilter),
		healthyConstraint(req.Healthy),
		req.PersonsCount,
		req.Category,
		ingredientSchema,
	)
}
