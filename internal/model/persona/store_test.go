package persona

import "testing"

func TestSeedContainsDefaultPersona(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByID(DefaultID)
	if !ok {
		t.Fatalf("default persona %s missing from seed", DefaultID)
	}
	if p.VoiceID == "" {
		t.Fatal("default persona must map to a voice")
	}
	if len(store.List()) != 5 {
		t.Fatalf("expected 5 personas, got %d", len(store.List()))
	}
}

func TestFindOrDefaultFallsBack(t *testing.T) {
	store := NewMemoryStore(Seed())

	p := store.FindOrDefault("does-not-exist")
	if p.ID != DefaultID {
		t.Fatalf("expected fallback to %s, got %s", DefaultID, p.ID)
	}
}
