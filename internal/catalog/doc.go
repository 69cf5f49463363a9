// Package catalog holds the bundled, read-only cocktail recipes.
//
// One JSON document per display language is embedded into the binary
// (data/api.json for English, data/api_es.json for Spanish). Both documents
// carry the same ids in the same order so favorites and collections survive
// a language switch. Category, occasion and difficulty values are stable
// English codes in both documents; only prose and ingredient names are
// translated.
//
// A Catalog is immutable once loaded and safe for concurrent use. It offers
// the lookups the views need:
//
//   - Find, Resolve and Featured for the detail pane and home header
//   - Search for free text over name, category and ingredient names
//   - MatchIngredients and IngredientCoverage for the mixer
//   - Tab and Shelves for the browse views
//   - Recommend and Similar for taste-based suggestions
package catalog
