package catalog

import (
	"strconv"
	"strings"
)

// Cocktail mirrors one entry of the bundled recipe document.
type Cocktail struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	Rating          float64      `json:"rating"`
	Ingredients     []Ingredient `json:"ingredients"`
	Taste           Taste        `json:"taste"`
	Occasion        []string     `json:"occasion"`
	Description     string       `json:"description"`
	Story           string       `json:"story"`
	Preparation     []string     `json:"preparation"`
	GlassType       string       `json:"glassType"`
	Garnish         string       `json:"garnish"`
	AlcoholContent  string       `json:"alcoholContent"`
	Calories        int          `json:"calories"`
	Difficulty      string       `json:"difficulty"`
	PreparationTime string       `json:"preparationTime"`
	Tips            string       `json:"tips"`
}

// Ingredient is a named quantity; Amount is free text ("45 ml", "2 dashes").
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Taste scores each axis from 0 to 5.
type Taste struct {
	Sweet  int `json:"sweet"`
	Sour   int `json:"sour"`
	Bitter int `json:"bitter"`
	Spicy  int `json:"spicy"`
}

// Distance is the sum of absolute per-axis differences.
func (t Taste) Distance(o Taste) int {
	return abs(t.Sweet-o.Sweet) + abs(t.Sour-o.Sour) + abs(t.Bitter-o.Bitter) + abs(t.Spicy-o.Spicy)
}

// ABV parses the leading integer of AlcoholContent ("18%" -> 18).
// ok is false when the field carries no number.
func (c Cocktail) ABV() (int, bool) {
	s := strings.TrimSpace(c.AlcoholContent)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasIngredient reports whether any ingredient name contains needle,
// ignoring case.
func (c Cocktail) HasIngredient(needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return false
	}
	for _, ing := range c.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), needle) {
			return true
		}
	}
	return false
}

// HasOccasion reports whether the cocktail lists any of the given occasions.
func (c Cocktail) HasOccasion(occasions ...string) bool {
	for _, have := range c.Occasion {
		for _, want := range occasions {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
