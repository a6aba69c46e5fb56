package game

import (
	"math/rand"
	"testing"
)

func TestPickerNoRepeatsWithinCycle(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	p := NewPicker(catalog, rand.New(rand.NewSource(1)))

	seen := make(map[int]bool)
	for i := 0; i < len(catalog); i++ {
		q := p.Next()
		if seen[q.ID] {
			t.Fatalf("Question %d repeated before the catalog was exhausted", q.ID)
		}
		seen[q.ID] = true
	}
	if p.Remaining() != 0 {
		t.Errorf("Full cycle should exhaust the catalog, %d remaining", p.Remaining())
	}
}

func TestPickerResetsWhenExhausted(t *testing.T) {
	t.Parallel()

	catalog := []Question{
		{ID: 1, Category: "A", Prompt: "a?", Answer: "a"},
		{ID: 2, Category: "B", Prompt: "b?", Answer: "b"},
	}
	p := NewPicker(catalog, rand.New(rand.NewSource(2)))

	p.Next()
	p.Next()

	// Third draw starts a new cycle instead of blocking.
	q := p.Next()
	if q.ID != 1 && q.ID != 2 {
		t.Fatalf("Recycled draw returned unknown question %d", q.ID)
	}
}

func TestPickerAvoidsBackToBackCategories(t *testing.T) {
	t.Parallel()

	catalog := []Question{
		{ID: 1, Category: "A", Prompt: "a1?", Answer: "a"},
		{ID: 2, Category: "A", Prompt: "a2?", Answer: "a"},
		{ID: 3, Category: "B", Prompt: "b1?", Answer: "b"},
		{ID: 4, Category: "B", Prompt: "b2?", Answer: "b"},
	}
	p := NewPicker(catalog, rand.New(rand.NewSource(3)))

	last := p.Next().Category
	for i := 0; i < 3; i++ {
		q := p.Next()
		if q.Category == last {
			t.Fatalf("Draw %d repeated category %q while another was available", i+1, last)
		}
		last = q.Category
	}
}

func TestPickerSingleCategoryStillProgresses(t *testing.T) {
	t.Parallel()

	catalog := []Question{
		{ID: 1, Category: "A", Prompt: "a1?", Answer: "a"},
		{ID: 2, Category: "A", Prompt: "a2?", Answer: "a"},
	}
	p := NewPicker(catalog, rand.New(rand.NewSource(4)))

	// Diversity is best-effort; a one-category catalog must not stall.
	for i := 0; i < 4; i++ {
		p.Next()
	}
}

func TestPickerEmptyCatalogFallsBack(t *testing.T) {
	t.Parallel()

	p := NewPicker(nil, rand.New(rand.NewSource(5)))
	q := p.Next()
	if q.Prompt == "" {
		t.Error("Built-in catalog should produce a real question")
	}
}

func TestDefaultCatalogIDs(t *testing.T) {
	t.Parallel()

	for i, q := range DefaultCatalog() {
		if q.ID != i+1 {
			t.Fatalf("Catalog IDs must be sequential from 1, entry %d has ID %d", i, q.ID)
		}
	}
}
