package community

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cocteler/cocteler/internal/kv"
)

// AnonymousAuthor is shown when the user never entered a name.
const AnonymousAuthor = "Anonymous User"

var (
	// ErrValidation marks a draft that cannot be published.
	ErrValidation = errors.New("invalid recipe")
	// ErrNotFound is returned for unknown recipe ids.
	ErrNotFound = errors.New("recipe not found")
)

// Filter selects which recipes List returns.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterMine    Filter = "mine"
	FilterPopular Filter = "popular"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterMine, FilterPopular}

// ParseFilter maps a user-supplied name to a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Filters, f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, mine or popular)", s)
}

// Next cycles to the following filter.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Recipe is a user-published cocktail.
type Recipe struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Author        string    `json:"author"`
	AuthorID      string    `json:"authorId"`
	Description   string    `json:"description"`
	Ingredients   []string  `json:"ingredients"`
	Steps         []string  `json:"steps"`
	Likes         int       `json:"likes"`
	Comments      int       `json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
	NameEs        string    `json:"nameEs,omitempty"`
	DescriptionEs string    `json:"descriptionEs,omitempty"`
	IngredientsEs []string  `json:"ingredientsEs,omitempty"`
	StepsEs       []string  `json:"stepsEs,omitempty"`
}

// Localized returns the recipe with Spanish text swapped in when lang is
// "es" and a translation exists.
func (r Recipe) Localized(lang string) Recipe {
	out := r.clone()
	if lang != "es" {
		return out
	}
	if r.NameEs != "" {
		out.Name = r.NameEs
	}
	if r.DescriptionEs != "" {
		out.Description = r.DescriptionEs
	}
	if len(r.IngredientsEs) > 0 {
		out.Ingredients = slices.Clone(r.IngredientsEs)
	}
	if len(r.StepsEs) > 0 {
		out.Steps = slices.Clone(r.StepsEs)
	}
	return out
}

func (r Recipe) clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Steps = slices.Clone(r.Steps)
	r.IngredientsEs = slices.Clone(r.IngredientsEs)
	r.StepsEs = slices.Clone(r.StepsEs)
	return r
}

// Draft is a recipe being published.
type Draft struct {
	Name        string
	Description string
	Ingredients []string
	Steps       []string
}

// Validate trims every field and requires all of them, with at least one
// ingredient and one step and no blank entries.
func (d *Draft) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Ingredients = trimAll(d.Ingredients)
	d.Steps = trimAll(d.Steps)
	return validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required, validation.RuneLength(1, 60)),
		validation.Field(&d.Description, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&d.Ingredients, validation.Required, validation.Each(validation.Required)),
		validation.Field(&d.Steps, validation.Required, validation.Each(validation.Required)),
	)
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// Board holds the community recipes. Reads come from the adapter once at
// Load; every change is persisted through the scheduler unless ReadOnly.
type Board struct {
	mu       sync.RWMutex
	recipes  []Recipe
	deviceID string
	lastID   int64
	// readOnly is set when the stored recipes could not be read; changes
	// stay in memory so the stored value is never replaced by the examples.
	readOnly bool

	adapter kv.Adapter
	writer  kv.Scheduler
	logger  *zap.Logger
	now     func() time.Time
}

// NewBoard returns an empty board.
func NewBoard(adapter kv.Adapter, writer kv.Scheduler, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		adapter: adapter,
		writer:  writer,
		logger:  logger.Named("community"),
		now:     time.Now,
	}
}

// EnsureDeviceID returns the id that marks this device's recipes as "mine",
// creating and storing a random one on first use.
func EnsureDeviceID(ctx context.Context, adapter kv.Adapter) (string, error) {
	id, found, err := adapter.Get(ctx, kv.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}
	if found && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := adapter.Set(ctx, kv.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("save device id: %w", err)
	}
	return id, nil
}

// Load reads the device id and the stored recipes. When nothing is stored
// the example recipes are seeded and persisted. On a read or decode error
// the example recipes are shown, the board stops persisting for the rest of
// the session so what is stored is never overwritten, and the error is
// returned.
func (b *Board) Load(ctx context.Context) error {
	deviceID, idErr := EnsureDeviceID(ctx, b.adapter)
	if idErr != nil {
		// Recipes still load; "mine" matches nothing this session.
		deviceID = "unsaved-" + uuid.NewString()
	}

	raw, found, err := b.adapter.Get(ctx, kv.KeyCommunity)
	var recipes []Recipe
	switch {
	case err != nil:
		err = fmt.Errorf("read community recipes: %w", err)
		recipes = Examples(b.now())
	case !found:
		recipes = Examples(b.now())
	default:
		if decodeErr := json.Unmarshal([]byte(raw), &recipes); decodeErr != nil {
			err = fmt.Errorf("decode community recipes: %w", decodeErr)
			recipes = Examples(b.now())
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.deviceID = deviceID
	b.recipes = recipes
	b.readOnly = err != nil
	if b.recipes == nil {
		b.recipes = []Recipe{}
	}
	if err == nil && !found {
		b.persistLocked()
	}
	return errors.Join(idErr, err)
}

// ReadOnly reports whether changes are kept in memory only because the
// stored recipes could not be loaded.
func (b *Board) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// DeviceID returns the author id used for this device's recipes.
func (b *Board) DeviceID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.deviceID
}

// Publish validates draft and prepends it as a new recipe. author falls
// back to AnonymousAuthor when blank.
func (b *Board) Publish(draft Draft, author string) (Recipe, error) {
	if err := draft.Validate(); err != nil {
		return Recipe{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = AnonymousAuthor
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	r := Recipe{
		ID:            b.nextIDLocked(now),
		Name:          draft.Name,
		Author:        author,
		AuthorID:      b.deviceID,
		Description:   draft.Description,
		Ingredients:   draft.Ingredients,
		Steps:         draft.Steps,
		CreatedAt:     now.UTC(),
		NameEs:        draft.Name,
		DescriptionEs: draft.Description,
		IngredientsEs: slices.Clone(draft.Ingredients),
		StepsEs:       slices.Clone(draft.Steps),
	}
	b.recipes = slices.Insert(b.recipes, 0, r)
	b.persistLocked()
	b.logger.Info("recipe published", zap.String("id", r.ID), zap.String("name", r.Name))
	return r.clone(), nil
}

func (b *Board) nextIDLocked(now time.Time) string {
	ms := max(now.UnixMilli(), b.lastID+1)
	for b.indexLocked("comm-"+strconv.FormatInt(ms, 10)) >= 0 {
		ms++
	}
	b.lastID = ms
	return "comm-" + strconv.FormatInt(ms, 10)
}

// Like adds one like and returns the new count.
func (b *Board) Like(id string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(id)
	if i < 0 {
		return 0, fmt.Errorf("like %s: %w", id, ErrNotFound)
	}
	b.recipes[i].Likes++
	b.persistLocked()
	return b.recipes[i].Likes, nil
}

// Get returns a copy of the recipe with the given id.
func (b *Board) Get(id string) (Recipe, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexLocked(id)
	if i < 0 {
		return Recipe{}, false
	}
	return b.recipes[i].clone(), true
}

// List returns copies of the recipes selected by filter. FilterAll and
// FilterMine keep stored order (newest first); FilterPopular orders by
// likes, most liked first.
func (b *Board) List(filter Filter) []Recipe {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		if filter == FilterMine && r.AuthorID != b.deviceID {
			continue
		}
		out = append(out, r.clone())
	}
	if filter == FilterPopular {
		slices.SortStableFunc(out, func(a, c Recipe) int {
			return cmp.Compare(c.Likes, a.Likes)
		})
	}
	return out
}

func (b *Board) indexLocked(id string) int {
	return slices.IndexFunc(b.recipes, func(r Recipe) bool { return r.ID == id })
}

func (b *Board) persistLocked() {
	if b.readOnly {
		b.logger.Warn("community recipes not saved, stored value was unreadable at load")
		return
	}
	raw, err := json.Marshal(b.recipes)
	if err != nil {
		b.logger.Error("encode community recipes failed", zap.Error(err))
		return
	}
	b.writer.Schedule(kv.KeyCommunity, string(raw))
}
