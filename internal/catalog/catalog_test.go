package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustLoad(t *testing.T, lang string) *Catalog {
	t.Helper()
	c, err := Load(lang)
	if err != nil {
		t.Fatalf("Load(%q): %v", lang, err)
	}
	return c
}

func ids(items []Cocktail) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestLoadBundledCatalogs(t *testing.T) {
	en := mustLoad(t, English)
	es := mustLoad(t, Spanish)

	if en.Len() == 0 {
		t.Fatal("english catalog is empty")
	}
	if got, want := es.Len(), en.Len(); got != want {
		t.Fatalf("spanish catalog has %d items, want %d", got, want)
	}
	if diff := cmp.Diff(ids(en.Items()), ids(es.Items())); diff != "" {
		t.Fatalf("catalog ids differ between languages (-en +es):\n%s", diff)
	}

	item, ok := es.Find("cocktail-13")
	if !ok {
		t.Fatal("cocktail-13 missing from spanish catalog")
	}
	if item.Name != "Penicilina" {
		t.Fatalf("spanish name = %q, want Penicilina", item.Name)
	}
}

func TestLoadUnknownLanguageFallsBackToEnglish(t *testing.T) {
	c := mustLoad(t, "fr")
	if got := c.Language(); got != English {
		t.Fatalf("Language() = %q, want %q", got, English)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`[{"id":"a","name":"One"},{"id":"a","name":"Two"}]`))
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFeatured(t *testing.T) {
	item, ok := mustLoad(t, English).Featured()
	if !ok || item.Name != FeaturedName {
		t.Fatalf("Featured() = %q, %v; want %q", item.Name, ok, FeaturedName)
	}

	c, err := New([]Cocktail{
		{ID: "a", Name: "A", Rating: 3.9},
		{ID: "b", Name: "B", Rating: 4.7},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	item, _ = c.Featured()
	if item.ID != "b" {
		t.Fatalf("fallback featured = %q, want b", item.ID)
	}

	empty, _ := New(nil)
	if _, ok := empty.Featured(); ok {
		t.Fatal("empty catalog should have no featured cocktail")
	}
}

func TestResolveSkipsUnknownIDs(t *testing.T) {
	c := mustLoad(t, English)
	got := ids(c.Resolve([]string{"cocktail-7", "missing", "cocktail-2"}))
	want := []string{"cocktail-7", "cocktail-2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestABV(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"18%", 18, true},
		{" 22 %", 22, true},
		{"30", 30, true},
		{"", 0, false},
		{"strong", 0, false},
	}
	for _, tt := range tests {
		got, ok := Cocktail{AlcoholContent: tt.in}.ABV()
		if got != tt.want || ok != tt.ok {
			t.Errorf("ABV(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTasteDistance(t *testing.T) {
	a := Taste{Sweet: 3, Sour: 1, Bitter: 0, Spicy: 5}
	b := Taste{Sweet: 1, Sour: 4, Bitter: 0, Spicy: 5}
	if got := a.Distance(b); got != 5 {
		t.Fatalf("Distance = %d, want 5", got)
	}
	if got := b.Distance(a); got != 5 {
		t.Fatalf("Distance not symmetric: %d", got)
	}
}
