package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cocteler/cocteler/internal/kv"
)

// MaxNameLength bounds collection names, counted in runes.
const MaxNameLength = 40

const (
	defaultColor = "#FF6B6B"
	defaultIcon  = "wine"
)

// ErrValidation marks rejected collection input.
var ErrValidation = errors.New("invalid collection")

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Collection is a user-named, ordered group of catalog ids.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Items       []string  `json:"items"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// Contains reports whether itemID is in the collection.
func (c Collection) Contains(itemID string) bool {
	return slices.Contains(c.Items, itemID)
}

func (c Collection) clone() Collection {
	c.Items = slices.Clone(c.Items)
	if c.Items == nil {
		c.Items = []string{}
	}
	return c
}

// CollectionInput describes a collection to create.
type CollectionInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// Validate checks the input after trimming surrounding whitespace.
func (in *CollectionInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.Description, validation.RuneLength(0, 200)),
		validation.Field(&in.Color, validation.Match(colorPattern).Error("must be a #RRGGBB color")),
	)
}

// CollectionPatch carries the fields to change; nil fields are left alone.
type CollectionPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// Validate checks the fields that are present after trimming surrounding
// whitespace from the name and description.
func (p *CollectionPatch) Validate() error {
	var rules []*validation.FieldRules
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		p.Name = &trimmed
		rules = append(rules, validation.Field(&p.Name, validation.Required, validation.RuneLength(1, MaxNameLength)))
	}
	if p.Description != nil {
		trimmed := strings.TrimSpace(*p.Description)
		p.Description = &trimmed
		rules = append(rules, validation.Field(&p.Description, validation.RuneLength(0, 200)))
	}
	if p.Color != nil {
		rules = append(rules, validation.Field(&p.Color, validation.Match(colorPattern).Error("must be a #RRGGBB color")))
	}
	return validation.ValidateStruct(p, rules...)
}

// DefaultCollections are created on first run.
func DefaultCollections() []Collection {
	return []Collection{
		{ID: "1", Name: "Party Favorites", Color: "#FF6B6B", Icon: "wine", Items: []string{}},
		{ID: "2", Name: "Date Night", Color: "#9B59B6", Icon: "heart", Items: []string{}},
	}
}

// Snapshot is a copy of the store state for renderers.
type Snapshot struct {
	Favorites   []string
	Collections []Collection
	Loading     bool
}

// Store holds favorites and collections in memory and mirrors every change
// to persistent storage through a kv.Scheduler.
type Store struct {
	mu          sync.RWMutex
	favorites   []string
	collections []Collection
	loading     bool
	lastID      int64

	adapter kv.Adapter
	writer  kv.Scheduler
	logger  *zap.Logger
	now     func() time.Time
}

// New returns a store that reads through adapter and persists through writer.
// The store starts in the loading state until Initialize returns.
func New(adapter kv.Adapter, writer kv.Scheduler, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		favorites:   []string{},
		collections: DefaultCollections(),
		loading:     true,
		adapter:     adapter,
		writer:      writer,
		logger:      logger.Named("favorites"),
		now:         time.Now,
	}
}

// Initialize reads persisted favorites and collections concurrently. Missing,
// unreadable or malformed values fall back to defaults; failures are logged
// and never returned. Loading is false once both reads have finished.
func (s *Store) Initialize(ctx context.Context) {
	favorites := []string{}
	collections := DefaultCollections()

	var g errgroup.Group
	g.Go(func() error {
		var stored []string
		if s.read(ctx, kv.KeyFavorites, &stored) && stored != nil {
			favorites = stored
		}
		return nil
	})
	g.Go(func() error {
		var stored []Collection
		if s.read(ctx, kv.KeyCollections, &stored) && stored != nil {
			collections = cloneCollections(stored)
		}
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = favorites
	s.collections = collections
	s.loading = false
	s.logger.Debug("favorites loaded",
		zap.Int("favorites", len(favorites)),
		zap.Int("collections", len(collections)))
}

// read decodes the stored value of key into dst and reports whether it did.
func (s *Store) read(ctx context.Context, key string, dst any) bool {
	raw, found, err := s.adapter.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("malformed stored value, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Loading reports whether Initialize is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsFavorite reports whether id is a favorite.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.favorites, id)
}

// ToggleFavorite removes id from the favorites when present and appends it
// otherwise. It returns the new membership.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := !slices.Contains(s.favorites, id)
	if added {
		s.favorites = append(s.favorites, id)
	} else {
		s.favorites = slices.DeleteFunc(s.favorites, func(v string) bool { return v == id })
	}
	s.persistFavoritesLocked()
	return added
}

// Favorites returns the favorite ids in insertion order.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.favorites...)
}

// CreateCollection appends a new, empty collection and returns its id.
func (s *Store) CreateCollection(in CollectionInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if in.Color == "" {
		in.Color = defaultColor
	}
	if in.Icon == "" {
		in.Icon = defaultIcon
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := s.nextIDLocked(now)
	s.collections = append(s.collections, Collection{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		Items:       []string{},
		CreatedAt:   now.UTC(),
	})
	s.persistCollectionsLocked()
	return id, nil
}

// nextIDLocked derives an id from the clock in milliseconds, stepping past
// ids already handed out or present.
func (s *Store) nextIDLocked(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	for s.indexLocked(strconv.FormatInt(ms, 10)) >= 0 {
		ms++
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

// UpdateCollection merges patch into the collection. found is false, and
// nothing changes, when id is unknown.
func (s *Store) UpdateCollection(id string, patch CollectionPatch) (found bool, err error) {
	if err := patch.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	c := &s.collections[i]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	s.persistCollectionsLocked()
	return true, nil
}

// DeleteCollection removes the collection and reports whether it existed.
func (s *Store) DeleteCollection(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.collections = slices.Delete(s.collections, i, i+1)
	s.persistCollectionsLocked()
	return true
}

// AddToCollection appends itemID unless already present. It reports whether
// the collection exists.
func (s *Store) AddToCollection(collectionID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(collectionID)
	if i < 0 {
		return false
	}
	c := &s.collections[i]
	if !slices.Contains(c.Items, itemID) {
		c.Items = append(c.Items, itemID)
		s.persistCollectionsLocked()
	}
	return true
}

// RemoveFromCollection drops itemID if present. It reports whether the
// collection exists.
func (s *Store) RemoveFromCollection(collectionID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(collectionID)
	if i < 0 {
		return false
	}
	c := &s.collections[i]
	if j := slices.Index(c.Items, itemID); j >= 0 {
		c.Items = slices.Delete(c.Items, j, j+1)
		s.persistCollectionsLocked()
	}
	return true
}

// IsInCollection reports membership; an unknown collection holds nothing.
func (s *Store) IsInCollection(collectionID, itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(collectionID)
	return i >= 0 && s.collections[i].Contains(itemID)
}

// Collection returns a copy of the collection with the given id.
func (s *Store) Collection(id string) (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Collection{}, false
	}
	return s.collections[i].clone(), true
}

// Collections returns copies of every collection in order.
func (s *Store) Collections() []Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCollections(s.collections)
}

// CollectionsContaining returns the ids of collections holding itemID.
func (s *Store) CollectionsContaining(itemID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, c := range s.collections {
		if c.Contains(itemID) {
			out = append(out, c.ID)
		}
	}
	return out
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Favorites:   append([]string{}, s.favorites...),
		Collections: cloneCollections(s.collections),
		Loading:     s.loading,
	}
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.collections, func(c Collection) bool { return c.ID == id })
}

func (s *Store) persistFavoritesLocked() {
	s.persistLocked(kv.KeyFavorites, s.favorites)
}

func (s *Store) persistCollectionsLocked() {
	s.persistLocked(kv.KeyCollections, s.collections)
}

// persistLocked serializes under the lock so the scheduled value matches the
// state this mutation produced.
func (s *Store) persistLocked(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.writer.Schedule(key, string(raw))
}

func cloneCollections(in []Collection) []Collection {
	out := make([]Collection, len(in))
	for i, c := range in {
		out[i] = c.clone()
	}
	return out
}
