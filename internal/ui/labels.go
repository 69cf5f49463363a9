package ui

import "github.com/cocteler/cocteler/internal/catalog"

// labels holds the few translated strings the views need. English is the
// fallback for missing entries.
var labels = map[string]map[string]string{
	catalog.English: {
		"home":            "Home",
		"search":          "Search",
		"mix":             "Mix",
		"shelves":         "Shelves",
		"favorites":       "Favorites",
		"community":       "Community",
		"settings":        "Settings",
		"logs":            "Logs",
		"collections":     "Collections",
		"featured":        "Featured",
		"details":         "Details",
		"ingredients":     "Ingredients",
		"preparation":     "Preparation",
		"similar":         "You may also like",
		"no_results":      "No cocktails found",
		"no_favorites":    "No favorites yet. Press f on any cocktail.",
		"empty":           "This collection is empty.",
		"search_hint":     "Type to search by name, category or ingredient",
		"mix_hint":        "Add ingredients you have; every one must be used",
		"no_recipes":      "No recipes to show",
		"select_cocktail": "Select a cocktail",
	},
	catalog.Spanish: {
		"home":            "Inicio",
		"search":          "Buscar",
		"mix":             "Mezclar",
		"shelves":         "Estantes",
		"favorites":       "Favoritos",
		"community":       "Comunidad",
		"settings":        "Ajustes",
		"logs":            "Registros",
		"collections":     "Colecciones",
		"featured":        "Destacado",
		"details":         "Detalles",
		"ingredients":     "Ingredientes",
		"preparation":     "Preparación",
		"similar":         "También te puede gustar",
		"no_results":      "No se encontraron cócteles",
		"no_favorites":    "Aún no hay favoritos. Pulsa f en cualquier cóctel.",
		"empty":           "Esta colección está vacía.",
		"search_hint":     "Escribe para buscar por nombre, categoría o ingrediente",
		"mix_hint":        "Añade los ingredientes que tienes; se deben usar todos",
		"no_recipes":      "No hay recetas para mostrar",
		"select_cocktail": "Selecciona un cóctel",
	},
}

// label returns the text for key in lang.
func label(lang, key string) string {
	if s, ok := labels[lang][key]; ok {
		return s
	}
	if s, ok := labels[catalog.English][key]; ok {
		return s
	}
	return key
}
