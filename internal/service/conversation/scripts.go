package conversation

import "context"

// 固定话术，与产品文案保持一致；LLM 失败时回退到 FallbackReply。

const (
	welcomeText = "Welcome to your meditation session. I'm here to guide you. How are you feeling today?"

	checkInText = "How are you feeling right now? Are you comfortable and ready to continue?"

	breathingText = "Let's begin a breathing exercise. Breathe in slowly for 4 counts... hold for 4... and breathe out for 6."

	farewellText = "Thank you for this meditation session. You've taken an important step in your wellness journey."

	interruptedText = "Of course, I'm listening."

	// FallbackReply replaces the generated reply whenever the language model
	// fails or returns nothing; a turn never fails outright.
	FallbackReply = "Let's take a moment to breathe together. Inhale deeply... and exhale slowly."
)

// StaticResponder always answers with the fallback guidance. It stands in
// when no language model is configured.
type StaticResponder struct{}

// GenerateReply implements Responder.
func (StaticResponder) GenerateReply(_ context.Context, _ string, _ map[string]any) (string, error) {
	return FallbackReply, nil
}
