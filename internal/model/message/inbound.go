package message

import "encoding/json"

// Recognized inbound commands.
const (
	CommandStartSpeaking     = "start_speaking"
	CommandStopSpeaking      = "stop_speaking"
	CommandCheckIn           = "check_in"
	CommandBreathingExercise = "breathing_exercise"
	CommandEndSession        = "end_session"
)

// Command 是客户端文本帧携带的控制命令。
type Command struct {
	Command string `json:"command"`
}

// ParseCommand decodes a text frame. A malformed or empty frame yields ok=false
// and is ignored by the caller; it is never a session-fatal error.
func ParseCommand(raw []byte) (Command, bool) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, false
	}
	if cmd.Command == "" {
		return Command{}, false
	}
	return cmd, true
}
