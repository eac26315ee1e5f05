package message

import (
	"encoding/base64"
	"time"
)

// 每条出站消息携带 type 判别字段，音频统一走 base64 编码（可为空串）。

// Outbound message type discriminators.
const (
	TypeSpeech            = "speech"
	TypeTranscript        = "transcript"
	TypeInterrupted       = "speech_interrupted"
	TypeConversation      = "conversation"
	TypeCheckIn           = "check_in"
	TypeBreathingExercise = "breathing_exercise"
	TypeSessionEnd        = "session_end"
)

// Speech is a standalone spoken prompt (welcome, check-in, farewell, ...).
type Speech struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Audio    string `json:"audio"`
	Speaking bool   `json:"speaking"`
}

// Transcript echoes one recognized fragment of user speech back to the client.
type Transcript struct {
	Type       string `json:"type"`
	Transcript string `json:"transcript"`
	Timestamp  string `json:"timestamp"`
}

// Interrupted notifies the client that AI playback was cut off by a barge-in.
type Interrupted struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Conversation is one completed turn: finalized user utterance plus the reply.
type Conversation struct {
	Type      string `json:"type"`
	UserInput string `json:"user_input"`
	Response  string `json:"response"`
	Audio     string `json:"audio"`
	Speaking  bool   `json:"speaking"`
}

// NewSpeech builds a spoken prompt of the given discriminator type.
func NewSpeech(msgType, text string, audio []byte) Speech {
	return Speech{
		Type:     msgType,
		Message:  text,
		Audio:    encodeAudio(audio),
		Speaking: true,
	}
}

// NewTranscript timestamps a recognized fragment.
func NewTranscript(text string, at time.Time) Transcript {
	return Transcript{
		Type:       TypeTranscript,
		Transcript: text,
		Timestamp:  at.UTC().Format(time.RFC3339),
	}
}

// NewInterrupted reports a barge-in.
func NewInterrupted(text string) Interrupted {
	return Interrupted{Type: TypeInterrupted, Message: text}
}

// NewConversation builds a completed turn. Speaking reflects whether audio
// is actually attached, so a synthesis failure degrades to text-only.
func NewConversation(userInput, response string, audio []byte) Conversation {
	return Conversation{
		Type:      TypeConversation,
		UserInput: userInput,
		Response:  response,
		Audio:     encodeAudio(audio),
		Speaking:  len(audio) > 0,
	}
}

func encodeAudio(audio []byte) string {
	if len(audio) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(audio)
}
