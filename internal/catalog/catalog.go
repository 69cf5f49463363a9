package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

//go:embed data/*.json
var bundled embed.FS

// Supported display languages.
const (
	English = "en"
	Spanish = "es"
)

// FeaturedName is the cocktail promoted on the home view.
const FeaturedName = "Union Square"

// Catalog is an immutable, ordered set of cocktails for one language.
type Catalog struct {
	lang  string
	items []Cocktail
	byID  map[string]int
}

// Languages lists the languages with a bundled catalog.
func Languages() []string {
	return []string{English, Spanish}
}

// Load returns the bundled catalog for lang. Unknown languages fall back to
// English.
func Load(lang string) (*Catalog, error) {
	name := "data/api.json"
	if lang == Spanish {
		name = "data/api_es.json"
	} else {
		lang = English
	}
	raw, err := bundled.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read bundled catalog: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	c.lang = lang
	return c, nil
}

// Parse decodes a JSON array of cocktails. Duplicate ids are rejected.
func Parse(raw []byte) (*Catalog, error) {
	var items []Cocktail
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(items)
}

// New builds a catalog over items, preserving their order.
func New(items []Cocktail) (*Catalog, error) {
	c := &Catalog{
		lang:  English,
		items: slices.Clone(items),
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range c.items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("cocktail %q has no id", item.Name)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate cocktail id %q", item.ID)
		}
		c.byID[item.ID] = i
	}
	return c, nil
}

// Language returns the catalog language code.
func (c *Catalog) Language() string {
	return c.lang
}

// Len returns the number of cocktails.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns every cocktail in catalog order.
func (c *Catalog) Items() []Cocktail {
	return slices.Clone(c.items)
}

// Find looks up a cocktail by id.
func (c *Catalog) Find(id string) (Cocktail, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Cocktail{}, false
	}
	return c.items[i], true
}

// Resolve maps ids to cocktails in the given order, skipping ids the catalog
// does not know.
func (c *Catalog) Resolve(ids []string) []Cocktail {
	out := make([]Cocktail, 0, len(ids))
	for _, id := range ids {
		if item, ok := c.Find(id); ok {
			out = append(out, item)
		}
	}
	return out
}

// Featured returns the promoted cocktail, or the best rated one when the
// catalog does not carry it.
func (c *Catalog) Featured() (Cocktail, bool) {
	if len(c.items) == 0 {
		return Cocktail{}, false
	}
	for _, item := range c.items {
		if item.Name == FeaturedName {
			return item, true
		}
	}
	best := c.items[0]
	for _, item := range c.items[1:] {
		if item.Rating > best.Rating {
			best = item
		}
	}
	return best, true
}
