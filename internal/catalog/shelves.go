package catalog

import "strings"

// Shelf is a themed, pre-filtered list of cocktails.
type Shelf struct {
	ID          string
	Title       string
	Description string
	Items       []Cocktail
}

type shelfRule struct {
	id, title, description string
	match                  func(Cocktail) bool
}

var shelfRules = []shelfRule{
	{"party", "Party", "Crowd pleasers for evenings and celebrations", func(c Cocktail) bool {
		return c.HasOccasion("evening", "celebration", "social gathering")
	}},
	{"brunch", "Brunch", "Light and bright for late mornings", func(c Cocktail) bool {
		return c.HasOccasion("brunch", "afternoon")
	}},
	{"summer", "Summer", "Refreshing drinks for hot days", func(c Cocktail) bool {
		return c.HasOccasion("summer", "beach")
	}},
	{"easy", "Easy", "Quick to build, hard to get wrong", func(c Cocktail) bool {
		return c.Difficulty == "Easy" || strings.Contains(c.PreparationTime, "3")
	}},
	{"citrus", "Citrus", "Zesty and fresh", func(c Cocktail) bool {
		return c.Category == "Citrus"
	}},
	{"classic", "Classic", "Timeless recipes", func(c Cocktail) bool {
		return c.Category == "Classic"
	}},
	{"exotic", "Exotic", "Tropical and adventurous", func(c Cocktail) bool {
		return c.Category == "Exotic"
	}},
	{"sweet", "Sweet", "For a sweeter palate", func(c Cocktail) bool {
		return c.Taste.Sweet >= 3
	}},
	{"sophisticated", "Sophisticated", "Spirit-forward, over 20% ABV", func(c Cocktail) bool {
		abv, ok := c.ABV()
		return ok && abv > 20
	}},
	{"lowcal", "Low calorie", "Under 180 kcal", func(c Cocktail) bool {
		return c.Calories < 180
	}},
}

// Shelves groups the catalog into themed shelves. Shelves with no cocktails
// are omitted; a cocktail may sit on several shelves.
func (c *Catalog) Shelves() []Shelf {
	var out []Shelf
	for _, rule := range shelfRules {
		var items []Cocktail
		for _, item := range c.items {
			if rule.match(item) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Shelf{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Items:       items,
		})
	}
	return out
}
