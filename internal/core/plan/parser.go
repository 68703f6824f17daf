package plan

import (
	"encoding/json"
	"regexp"
	"strings"

	"recipe-planner/internal/pkg/common"
)

// fencePattern matches one triple-backtick block, with or without a language
// tag, anywhere in the raw model output.
var fencePattern = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?\\s*(.*?)```")

// ExtractPayload returns the interior of the first fenced code block if the
// raw text contains one, otherwise the trimmed raw text. Models are asked not
// to use fences, but they do anyway.
func ExtractPayload(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

type recipesEnvelope struct {
	Recipes *json.RawMessage `json:"recipes"`
}

type recipeEnvelope struct {
	Recipe *json.RawMessage `json:"recipe"`
}

// ParseRecipes decodes the batch-generation payload. It fails with a
// ParseError when the text is not valid JSON or the top-level "recipes" key
// is absent, never with a silent empty result.
func ParseRecipes(raw string) ([]Recipe, error) {
	payload := ExtractPayload(raw)

	var envelope recipesEnvelope
	if err := common.ParseJSON(payload, &envelope); err != nil {
		return nil, common.NewParseError("model output is not valid JSON", err)
	}
	if envelope.Recipes == nil {
		return nil, common.NewParseError(`model output is missing the "recipes" key`, nil)
	}

	var recipes []Recipe
	if err := common.ParseJSONBytes(*envelope.Recipes, &recipes); err != nil {
		return nil, common.NewParseError(`the "recipes" value does not match the recipe schema`, err)
	}

	return recipes, nil
}

// ParseRecipe decodes the single-recipe payload under the top-level "recipe"
// key, with the same ParseError semantics as ParseRecipes.
func ParseRecipe(raw string) (Recipe, error) {
	payload := ExtractPayload(raw)

	var envelope recipeEnvelope
	if err := common.ParseJSON(payload, &envelope); err != nil {
		return Recipe{}, common.NewParseError("model output is not valid JSON", err)
	}
	if envelope.Recipe == nil {
		return Recipe{}, common.NewParseError(`model output is missing the "recipe" key`, nil)
	}

	var recipe Recipe
	if err := common.ParseJSONBytes(*envelope.Recipe, &recipe); err != nil {
		return Recipe{}, common.NewParseError(`the "recipe" value does not match the recipe schema`, err)
	}

	return recipe, nil
}
