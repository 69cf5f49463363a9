package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// PopularIngredients are offered as quick picks in the mixer.
var PopularIngredients = []string{
	"Gin", "Vodka", "Rum", "Tequila", "Whiskey",
	"Lime", "Lemon", "Orange", "Mint", "Soda",
	"Vermouth", "Grenadine", "Sugar", "Aperol", "Prosecco",
}

// Tab selects an ordering of the home list.
type Tab int

const (
	TabRecommended Tab = iota
	TabPopular
	TabNewest
)

// Tabs lists the home tabs in display order.
var Tabs = []Tab{TabRecommended, TabPopular, TabNewest}

func (t Tab) String() string {
	switch t {
	case TabPopular:
		return "Popular"
	case TabNewest:
		return "Newest"
	default:
		return "Recommended"
	}
}

// Search returns cocktails whose name, category or any ingredient name
// contains text, ignoring case. Blank text matches nothing.
func (c *Catalog) Search(text string) []Cocktail {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}
	var out []Cocktail
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Category), needle) ||
			item.HasIngredient(needle) {
			out = append(out, item)
		}
	}
	return out
}

// MatchIngredients returns cocktails containing every selected ingredient.
// An empty selection matches nothing.
func (c *Catalog) MatchIngredients(selected []string) []Cocktail {
	wanted := normalizeSelection(selected)
	if len(wanted) == 0 {
		return nil
	}
	var out []Cocktail
	for _, item := range c.items {
		if IngredientCoverage(item, wanted) == len(wanted) {
			out = append(out, item)
		}
	}
	return out
}

// IngredientCoverage counts how many selected ingredients item contains.
func IngredientCoverage(item Cocktail, selected []string) int {
	n := 0
	for _, want := range selected {
		if item.HasIngredient(want) {
			n++
		}
	}
	return n
}

// Ingredients returns the sorted, de-duplicated ingredient names in lower case.
func (c *Catalog) Ingredients() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range c.items {
		for _, ing := range item.Ingredients {
			name := strings.ToLower(strings.TrimSpace(ing.Name))
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Tab returns the home list for tab. The featured cocktail is excluded from
// the recommended list since it is shown above it.
func (c *Catalog) Tab(tab Tab) []Cocktail {
	switch tab {
	case TabPopular:
		out := slices.Clone(c.items)
		slices.SortStableFunc(out, func(a, b Cocktail) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
		return out
	case TabNewest:
		out := slices.Clone(c.items)
		slices.Reverse(out)
		return out
	default:
		featured, ok := c.Featured()
		out := make([]Cocktail, 0, len(c.items))
		for _, item := range c.items {
			if ok && item.ID == featured.ID {
				continue
			}
			out = append(out, item)
		}
		return out
	}
}

func normalizeSelection(selected []string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
