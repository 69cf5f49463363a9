package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/kv"
)

const completedValue = "true"

// ErrValidation marks preferences that fail validation.
var ErrValidation = errors.New("invalid preferences")

// Bases lists the accepted favorite base spirits. An empty base means the
// user skipped the question.
var Bases = []string{"gin", "vodka", "rum", "tequila", "whiskey", "any"}

// KnownOccasions are suggested occasions; others are accepted as typed.
var KnownOccasions = []string{
	"evening", "celebration", "brunch", "dinner",
	"party", "date night", "casual", "summer",
}

// TastePreferences scores each axis from 0 to 5.
type TastePreferences struct {
	Sweet  int `json:"sweet"`
	Sour   int `json:"sour"`
	Bitter int `json:"bitter"`
	Spicy  int `json:"spicy"`
}

func (t TastePreferences) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Sweet, validation.Min(0), validation.Max(5)),
		validation.Field(&t.Sour, validation.Min(0), validation.Max(5)),
		validation.Field(&t.Bitter, validation.Min(0), validation.Max(5)),
		validation.Field(&t.Spicy, validation.Min(0), validation.Max(5)),
	)
}

// UserPreferences is what onboarding collects.
type UserPreferences struct {
	Name             string           `json:"name"`
	TastePreferences TastePreferences `json:"tastePreferences"`
	FavoriteBase     string           `json:"favoriteBase"`
	Occasions        []string         `json:"occasions"`
}

// DefaultPreferences returns the blank preferences of a new user.
func DefaultPreferences() UserPreferences {
	return UserPreferences{Occasions: []string{}}
}

func (p UserPreferences) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.RuneLength(0, 40)),
		validation.Field(&p.TastePreferences),
		validation.Field(&p.FavoriteBase, validation.In(anySlice(Bases)...)),
		validation.Field(&p.Occasions, validation.Each(validation.Required, validation.RuneLength(1, 30))),
	)
}

// Profile converts the preferences into catalog recommendation input.
func (p UserPreferences) Profile() catalog.Profile {
	return catalog.Profile{
		Taste: catalog.Taste{
			Sweet:  p.TastePreferences.Sweet,
			Sour:   p.TastePreferences.Sour,
			Bitter: p.TastePreferences.Bitter,
			Spicy:  p.TastePreferences.Spicy,
		},
		Base:      p.FavoriteBase,
		Occasions: slices.Clone(p.Occasions),
	}
}

func (p UserPreferences) clone() UserPreferences {
	p.Occasions = slices.Clone(p.Occasions)
	if p.Occasions == nil {
		p.Occasions = []string{}
	}
	return p
}

// Patch holds the fields to overwrite; nil fields keep their current value.
type Patch struct {
	Name         *string
	Taste        *TastePreferences
	FavoriteBase *string
	Occasions    []string
}

// Apply returns p with the patch merged in. Text is trimmed and occasions are
// lower-cased and de-duplicated.
func (p UserPreferences) Apply(patch Patch) UserPreferences {
	out := p.clone()
	if patch.Name != nil {
		out.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Taste != nil {
		out.TastePreferences = *patch.Taste
	}
	if patch.FavoriteBase != nil {
		out.FavoriteBase = strings.ToLower(strings.TrimSpace(*patch.FavoriteBase))
	}
	if patch.Occasions != nil {
		out.Occasions = []string{}
		for _, occ := range patch.Occasions {
			occ = strings.ToLower(strings.TrimSpace(occ))
			if !slices.Contains(out.Occasions, occ) {
				out.Occasions = append(out.Occasions, occ)
			}
		}
	}
	return out
}

// Service owns the onboarding flag and the stored preferences. Writes are
// awaited: they follow explicit user confirmation and report failure.
type Service struct {
	mu        sync.RWMutex
	completed bool
	prefs     UserPreferences

	adapter kv.Adapter
	logger  *zap.Logger
}

// New returns a service with default preferences.
func New(adapter kv.Adapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		prefs:   DefaultPreferences(),
		adapter: adapter,
		logger:  logger.Named("onboarding"),
	}
}

// Load reads the flag and, only when onboarding was completed, the stored
// preferences. On error the service keeps its defaults.
func (s *Service) Load(ctx context.Context) error {
	flag, _, err := s.adapter.Get(ctx, kv.KeyOnboardingCompleted)
	if err != nil {
		return fmt.Errorf("read onboarding flag: %w", err)
	}
	if flag != completedValue {
		return nil
	}

	prefs := DefaultPreferences()
	raw, found, err := s.adapter.Get(ctx, kv.KeyUserPreferences)
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
			s.setCompleted(true, DefaultPreferences())
			return fmt.Errorf("decode preferences: %w", err)
		}
	}
	s.setCompleted(true, prefs.clone())
	return nil
}

func (s *Service) setCompleted(completed bool, prefs UserPreferences) {
	s.mu.Lock()
	s.completed = completed
	s.prefs = prefs
	s.mu.Unlock()
}

// Completed reports whether onboarding has been finished.
func (s *Service) Completed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

// Preferences returns a copy of the current preferences.
func (s *Service) Preferences() UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.clone()
}

// Complete merges patch, stores the preferences and marks onboarding done.
func (s *Service) Complete(ctx context.Context, patch Patch) error {
	return s.save(ctx, patch, true)
}

// Update merges patch and stores the preferences without touching the flag.
func (s *Service) Update(ctx context.Context, patch Patch) error {
	return s.save(ctx, patch, false)
}

func (s *Service) save(ctx context.Context, patch Patch, complete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.prefs.Apply(patch)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if complete {
		if err := s.adapter.Set(ctx, kv.KeyOnboardingCompleted, completedValue); err != nil {
			s.logger.Warn("save onboarding flag failed", zap.Error(err))
			return fmt.Errorf("save onboarding flag: %w", err)
		}
	}
	if err := s.adapter.Set(ctx, kv.KeyUserPreferences, string(raw)); err != nil {
		s.logger.Warn("save preferences failed", zap.Error(err))
		return fmt.Errorf("save preferences: %w", err)
	}

	s.prefs = merged
	if complete {
		s.completed = true
	}
	s.logger.Info("preferences saved", zap.Bool("onboarding_complete", s.completed))
	return nil
}

// Reset clears the stored flag and preferences.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.Delete(ctx, kv.KeyOnboardingCompleted); err != nil {
		return fmt.Errorf("delete onboarding flag: %w", err)
	}
	if err := s.adapter.Delete(ctx, kv.KeyUserPreferences); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	s.completed = false
	s.prefs = DefaultPreferences()
	s.logger.Info("onboarding reset")
	return nil
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
