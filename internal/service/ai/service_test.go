package ai

import "testing"

func TestFormatContextIsDeterministic(t *testing.T) {
	ctx := map[string]any{
		"session_type":      "guided_breathing",
		"interaction_count": 3,
		"elapsed_minutes":   12,
	}

	want := "elapsed_minutes=12, interaction_count=3, session_type=guided_breathing"
	for i := 0; i < 10; i++ {
		if got := formatContext(ctx); got != want {
			t.Fatalf("unexpected context rendering: %q", got)
		}
	}
}

func TestFormatContextEmpty(t *testing.T) {
	if got := formatContext(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}
