package conversation

// Floor 表示会话当前由谁掌握话语权。
type Floor int

const (
	// FloorIdle is the initial state, before the welcome prompt is spoken.
	FloorIdle Floor = iota
	// FloorAISpeaking means synthesized guidance is (nominally) playing.
	FloorAISpeaking
	// FloorUserListening means the microphone side holds the floor.
	FloorUserListening
	// FloorEnded is terminal; every further event is a no-op.
	FloorEnded
)

func (f Floor) String() string {
	switch f {
	case FloorIdle:
		return "idle"
	case FloorAISpeaking:
		return "ai_speaking"
	case FloorUserListening:
		return "user_listening"
	case FloorEnded:
		return "ended"
	default:
		return "unknown"
	}
}
