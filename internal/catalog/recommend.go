package catalog

import (
	"cmp"
	"slices"
)

const (
	baseBonus     = 3
	occasionBonus = 1
)

// Profile is the part of a user's preferences that drives recommendations.
type Profile struct {
	Taste     Taste
	Base      string
	Occasions []string
}

// baseAliases widens a favorite base to the ingredient names that carry it.
var baseAliases = map[string][]string{
	"gin":     {"gin"},
	"vodka":   {"vodka"},
	"rum":     {"rum", "cachaça"},
	"tequila": {"tequila", "mezcal"},
	"whiskey": {"whiskey", "whisky", "bourbon", "rye", "scotch"},
}

// Scored pairs a cocktail with its recommendation score.
type Scored struct {
	Cocktail
	Score int
}

// Score rates how well item fits p: closer taste scores higher, and a
// matching base spirit or shared occasion adds a bonus.
func (p Profile) Score(item Cocktail) int {
	score := -item.Taste.Distance(p.Taste)
	for _, alias := range baseAliases[p.Base] {
		if item.HasIngredient(alias) {
			score += baseBonus
			break
		}
	}
	for _, occ := range p.Occasions {
		if item.HasOccasion(occ) {
			score += occasionBonus
		}
	}
	return score
}

// Recommend returns up to n cocktails ordered by score, then rating.
// n <= 0 returns the whole ranked catalog.
func (c *Catalog) Recommend(p Profile, n int) []Scored {
	out := make([]Scored, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, Scored{Cocktail: item, Score: p.Score(item)})
	}
	slices.SortStableFunc(out, func(a, b Scored) int {
		if d := cmp.Compare(b.Score, a.Score); d != 0 {
			return d
		}
		return cmp.Compare(b.Rating, a.Rating)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Similar returns up to n cocktails closest in taste to id, excluding id.
func (c *Catalog) Similar(id string, n int) []Cocktail {
	target, ok := c.Find(id)
	if !ok {
		return nil
	}
	type ranked struct {
		item Cocktail
		dist int
	}
	var candidates []ranked
	for _, item := range c.items {
		if item.ID == id {
			continue
		}
		candidates = append(candidates, ranked{item, item.Taste.Distance(target.Taste)})
	}
	slices.SortStableFunc(candidates, func(a, b ranked) int {
		return cmp.Compare(a.dist, b.dist)
	})
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Cocktail, len(candidates))
	for i, r := range candidates {
		out[i] = r.item
	}
	return out
}
