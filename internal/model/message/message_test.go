package message

import "testing"

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand([]byte(`{"command":"start_speaking"}`))
	if !ok {
		t.Fatal("expected command to parse")
	}
	if cmd.Command != CommandStartSpeaking {
		t.Fatalf("unexpected command: %q", cmd.Command)
	}
}

func TestParseCommandRejectsMalformedFrames(t *testing.T) {
	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"command":""}`),
	}
	for _, raw := range cases {
		if _, ok := ParseCommand(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestNewConversationSpeakingTracksAudio(t *testing.T) {
	withAudio := NewConversation("hi", "hello", []byte{1, 2, 3})
	if !withAudio.Speaking || withAudio.Audio == "" {
		t.Fatalf("expected speaking turn with audio, got %#v", withAudio)
	}

	textOnly := NewConversation("hi", "hello", nil)
	if textOnly.Speaking || textOnly.Audio != "" {
		t.Fatalf("expected text-only turn, got %#v", textOnly)
	}
}
