package state

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cocteler/cocteler/internal/kv"
)

// recorder captures scheduled writes in order.
type recorder struct {
	mu     sync.Mutex
	writes []write
}

type write struct{ key, value string }

func (r *recorder) Schedule(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, write{key, value})
}

func (r *recorder) last(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.writes) - 1; i >= 0; i-- {
		if r.writes[i].key == key {
			return r.writes[i].value, true
		}
	}
	return "", false
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func newLoadedStore(t *testing.T) (*Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(kv.NewMemory(), rec, nil)
	s.Initialize(context.Background())
	return s, rec
}

func collectionNames(cs []Collection) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestStore_EmptyStartUsesDefaults(t *testing.T) {
	mem := kv.NewMemory()
	s := New(mem, &recorder{}, nil)
	if !s.Loading() {
		t.Fatal("Loading() = false before Initialize")
	}
	s.Initialize(context.Background())

	snap := s.Snapshot()
	if snap.Loading {
		t.Fatal("Loading = true after Initialize")
	}
	if snap.Favorites == nil || len(snap.Favorites) != 0 {
		t.Fatalf("Favorites = %#v, want empty non-nil", snap.Favorites)
	}
	want := []string{"Party Favorites", "Date Night"}
	if diff := cmp.Diff(want, collectionNames(snap.Collections)); diff != "" {
		t.Fatalf("seed collections mismatch (-want +got):\n%s", diff)
	}
	if mem.Writes() != 0 {
		t.Fatalf("Initialize wrote %d values, want 0", mem.Writes())
	}
}

func TestStore_ToggleFavoriteIsInvolution(t *testing.T) {
	s, _ := newLoadedStore(t)
	s.ToggleFavorite("cocktail-1")
	before := s.Favorites()

	for _, id := range []string{"cocktail-2", "cocktail-1"} {
		s.ToggleFavorite(id)
		s.ToggleFavorite(id)
		if diff := cmp.Diff(before, s.Favorites()); diff != "" {
			t.Fatalf("double toggle of %s changed favorites (-want +got):\n%s", id, diff)
		}
	}
}

func TestStore_IsFavoriteTracksToggles(t *testing.T) {
	s, _ := newLoadedStore(t)
	seq := []struct {
		id   string
		want bool
	}{
		{"a", true},
		{"b", true},
		{"a", false},
		{"a", true},
		{"b", false},
	}
	for i, step := range seq {
		if got := s.ToggleFavorite(step.id); got != step.want {
			t.Fatalf("step %d: ToggleFavorite(%s) = %v, want %v", i, step.id, got, step.want)
		}
		if got := s.IsFavorite(step.id); got != step.want {
			t.Fatalf("step %d: IsFavorite(%s) = %v, want %v", i, step.id, got, step.want)
		}
	}
	if diff := cmp.Diff([]string{"a"}, s.Favorites()); diff != "" {
		t.Fatalf("final favorites (-want +got):\n%s", diff)
	}
}

func TestStore_ToggleFavoritePersistsThroughWriter(t *testing.T) {
	mem := kv.NewMemory()
	w := kv.NewWriter(mem, kv.WriterOptions{Debounce: 10 * time.Millisecond})
	s := New(mem, w, nil)
	s.Initialize(context.Background())

	s.ToggleFavorite("cocktail-7")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, ok, err := mem.Get(ctx, kv.KeyFavorites)
	if err != nil || !ok {
		t.Fatalf("Get favorites: ok=%v err=%v", ok, err)
	}
	if raw != `["cocktail-7"]` {
		t.Fatalf("persisted = %s, want [\"cocktail-7\"]", raw)
	}
	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(s.Favorites(), decoded); diff != "" {
		t.Fatalf("persisted favorites differ (-memory +disk):\n%s", diff)
	}
}

func TestStore_RapidTogglesPersistLastState(t *testing.T) {
	mem := kv.NewMemory()
	w := kv.NewWriter(mem, kv.WriterOptions{Debounce: time.Millisecond})
	s := New(mem, w, nil)
	s.Initialize(context.Background())

	for i := range 25 {
		s.ToggleFavorite("cocktail-" + string(rune('a'+i%5)))
	}
	if err := w.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, _, _ := mem.Get(context.Background(), kv.KeyFavorites)
	want, _ := json.Marshal(s.Favorites())
	if raw != string(want) {
		t.Fatalf("persisted = %s, want %s", raw, want)
	}
}

func TestStore_CreateCollection(t *testing.T) {
	s, rec := newLoadedStore(t)

	id, err := s.CreateCollection(CollectionInput{Name: "  Test  "})
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	c, ok := s.Collection(id)
	if !ok {
		t.Fatalf("Collection(%s) not found", id)
	}
	if c.Name != "Test" {
		t.Fatalf("name = %q, want Test", c.Name)
	}
	if c.Items == nil || len(c.Items) != 0 {
		t.Fatalf("items = %#v, want empty", c.Items)
	}
	if c.Color != defaultColor || c.Icon != defaultIcon {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if _, ok := rec.last(kv.KeyCollections); !ok {
		t.Fatal("collections were not persisted")
	}
}

func TestStore_CreateCollectionRejectsInvalidInput(t *testing.T) {
	s, rec := newLoadedStore(t)
	tests := []struct {
		name string
		in   CollectionInput
	}{
		{"blank name", CollectionInput{Name: "   "}},
		{"long name", CollectionInput{Name: strings.Repeat("ñ", MaxNameLength+1)}},
		{"bad color", CollectionInput{Name: "Ok", Color: "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateCollection(tt.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
	if got := len(s.Collections()); got != 2 {
		t.Fatalf("collections = %d, want 2", got)
	}
	if rec.count() != 0 {
		t.Fatalf("invalid input scheduled %d writes", rec.count())
	}

	if _, err := s.CreateCollection(CollectionInput{Name: strings.Repeat("ñ", MaxNameLength)}); err != nil {
		t.Fatalf("name at limit rejected: %v", err)
	}
}

func TestStore_CollectionIDsAreUniqueWithinOneMillisecond(t *testing.T) {
	s, _ := newLoadedStore(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for range 5 {
		id, err := s.CreateCollection(CollectionInput{Name: "Same"})
		if err != nil {
			t.Fatalf("CreateCollection: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestStore_AddToCollectionIsIdempotent(t *testing.T) {
	s, _ := newLoadedStore(t)
	id, _ := s.CreateCollection(CollectionInput{Name: "Test"})

	s.AddToCollection(id, "cocktail-3")
	s.AddToCollection(id, "cocktail-3")

	c, _ := s.Collection(id)
	if diff := cmp.Diff([]string{"cocktail-3"}, c.Items); diff != "" {
		t.Fatalf("items (-want +got):\n%s", diff)
	}
	if !s.IsInCollection(id, "cocktail-3") {
		t.Fatal("IsInCollection = false after add")
	}
}

func TestStore_RemoveRestoresItems(t *testing.T) {
	s, _ := newLoadedStore(t)
	id, _ := s.CreateCollection(CollectionInput{Name: "Test"})
	s.AddToCollection(id, "cocktail-1")
	s.AddToCollection(id, "cocktail-2")
	before, _ := s.Collection(id)

	s.AddToCollection(id, "cocktail-9")
	s.RemoveFromCollection(id, "cocktail-9")

	after, _ := s.Collection(id)
	if diff := cmp.Diff(before.Items, after.Items); diff != "" {
		t.Fatalf("items not restored (-before +after):\n%s", diff)
	}
}

func TestStore_DeleteCollection(t *testing.T) {
	s, _ := newLoadedStore(t)
	id, _ := s.CreateCollection(CollectionInput{Name: "Test"})
	s.AddToCollection(id, "cocktail-1")

	if !s.DeleteCollection(id) {
		t.Fatal("DeleteCollection = false for existing collection")
	}
	if s.IsInCollection(id, "cocktail-1") {
		t.Fatal("IsInCollection = true after delete")
	}
	if _, ok := s.Collection(id); ok {
		t.Fatal("collection still present")
	}
	if s.DeleteCollection(id) {
		t.Fatal("second delete reported success")
	}
}

func TestStore_UnknownCollectionOperationsAreNoOps(t *testing.T) {
	s, rec := newLoadedStore(t)
	name := "Renamed"

	found, err := s.UpdateCollection("missing", CollectionPatch{Name: &name})
	if err != nil || found {
		t.Fatalf("UpdateCollection = %v, %v; want false, nil", found, err)
	}
	if s.AddToCollection("missing", "x") || s.RemoveFromCollection("missing", "x") {
		t.Fatal("add/remove on unknown collection reported success")
	}
	if s.IsInCollection("missing", "x") {
		t.Fatal("IsInCollection on unknown collection = true")
	}
	if rec.count() != 0 {
		t.Fatalf("no-op operations scheduled %d writes", rec.count())
	}
}

func TestStore_UpdateCollectionMergesPatch(t *testing.T) {
	s, rec := newLoadedStore(t)
	id, _ := s.CreateCollection(CollectionInput{Name: "Test", Description: "keep me", Icon: "star"})
	s.AddToCollection(id, "cocktail-4")

	name, color := " Summer ", "#00AAFF"
	found, err := s.UpdateCollection(id, CollectionPatch{Name: &name, Color: &color})
	if err != nil || !found {
		t.Fatalf("UpdateCollection = %v, %v", found, err)
	}

	c, _ := s.Collection(id)
	if c.Name != "Summer" || c.Color != "#00AAFF" {
		t.Fatalf("patched fields = %q %q", c.Name, c.Color)
	}
	if c.Description != "keep me" || c.Icon != "star" || !c.Contains("cocktail-4") {
		t.Fatalf("unpatched fields changed: %+v", c)
	}

	raw, _ := rec.last(kv.KeyCollections)
	var stored []Collection
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("decode persisted collections: %v", err)
	}
	if stored[len(stored)-1].Name != "Summer" {
		t.Fatalf("persisted name = %q", stored[len(stored)-1].Name)
	}

	empty := ""
	if _, err := s.UpdateCollection(id, CollectionPatch{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank rename err = %v, want ErrValidation", err)
	}
}

func TestStore_UpdateCollectionTrimsDescriptionBeforeValidating(t *testing.T) {
	s, _ := newLoadedStore(t)
	id, _ := s.CreateCollection(CollectionInput{Name: "Test"})

	body := strings.Repeat("d", 200)
	padded := "   " + body + "   "
	found, err := s.UpdateCollection(id, CollectionPatch{Description: &padded})
	if err != nil || !found {
		t.Fatalf("UpdateCollection(padded description) = %v, %v; want true, nil", found, err)
	}
	if c, _ := s.Collection(id); c.Description != body {
		t.Fatalf("description stored with %d runes, want trimmed %d", len(c.Description), len(body))
	}

	tooLong := strings.Repeat("d", 201)
	if _, err := s.UpdateCollection(id, CollectionPatch{Description: &tooLong}); !errors.Is(err, ErrValidation) {
		t.Fatalf("long description err = %v, want ErrValidation", err)
	}
}

func TestStore_InitializeReadsPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	_ = mem.Set(ctx, kv.KeyFavorites, `["cocktail-2","cocktail-5"]`)
	_ = mem.Set(ctx, kv.KeyCollections, `[{"id":"99","name":"Mine","color":"#112233","icon":"star","items":["cocktail-2"]}]`)

	s := New(mem, &recorder{}, nil)
	s.Initialize(ctx)

	if diff := cmp.Diff([]string{"cocktail-2", "cocktail-5"}, s.Favorites()); diff != "" {
		t.Fatalf("favorites (-want +got):\n%s", diff)
	}
	cs := s.Collections()
	if len(cs) != 1 || cs[0].Name != "Mine" || !s.IsInCollection("99", "cocktail-2") {
		t.Fatalf("collections = %+v", cs)
	}
}

func TestStore_InitializeFallsBackOnBadData(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		setup func(*kv.Memory)
	}{
		{"malformed json", func(m *kv.Memory) {
			_ = m.Set(ctx, kv.KeyFavorites, `["cocktail-1"`)
			_ = m.Set(ctx, kv.KeyCollections, `{"oops":true}`)
		}},
		{"json null", func(m *kv.Memory) {
			_ = m.Set(ctx, kv.KeyFavorites, `null`)
			_ = m.Set(ctx, kv.KeyCollections, `null`)
		}},
		{"read failure", func(m *kv.Memory) {
			m.FailReads(errors.New("storage unavailable"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemory()
			tt.setup(mem)
			s := New(mem, &recorder{}, nil)
			s.Initialize(ctx)

			snap := s.Snapshot()
			if snap.Loading {
				t.Fatal("still loading")
			}
			if snap.Favorites == nil || len(snap.Favorites) != 0 {
				t.Fatalf("favorites = %#v, want empty", snap.Favorites)
			}
			if diff := cmp.Diff(collectionNames(DefaultCollections()), collectionNames(snap.Collections)); diff != "" {
				t.Fatalf("collections (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s, _ := newLoadedStore(t)
	s.ToggleFavorite("cocktail-1")
	s.AddToCollection("1", "cocktail-1")

	snap := s.Snapshot()
	snap.Favorites[0] = "mutated"
	snap.Collections[0].Items[0] = "mutated"
	snap.Collections[0].Name = "mutated"

	again := s.Snapshot()
	if again.Favorites[0] != "cocktail-1" {
		t.Fatalf("favorites shared with snapshot: %v", again.Favorites)
	}
	if again.Collections[0].Items[0] != "cocktail-1" || again.Collections[0].Name != "Party Favorites" {
		t.Fatalf("collections shared with snapshot: %+v", again.Collections[0])
	}
}

func TestStore_CollectionsContaining(t *testing.T) {
	s, _ := newLoadedStore(t)
	s.AddToCollection("1", "cocktail-5")
	s.AddToCollection("2", "cocktail-5")
	s.AddToCollection("2", "cocktail-6")

	if diff := cmp.Diff([]string{"1", "2"}, s.CollectionsContaining("cocktail-5")); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := s.CollectionsContaining("cocktail-9"); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s, _ := newLoadedStore(t)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := "cocktail-" + string(rune('a'+i))
			s.ToggleFavorite(id)
			s.AddToCollection("1", id)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := len(s.Favorites()); got != 16 {
		t.Fatalf("favorites = %d, want 16", got)
	}
	c, _ := s.Collection("1")
	if len(c.Items) != 16 {
		t.Fatalf("collection items = %d, want 16", len(c.Items))
	}
}
