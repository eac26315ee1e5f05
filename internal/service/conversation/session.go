// Package conversation coordinates duplex voice sessions: who holds the
// floor, when a burst of user speech is complete, and the cancellable
// transcribe → reply → synthesize → deliver pipeline per finished utterance.
package conversation

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wanyue/mindgarden/backend/internal/model/message"
	"github.com/wanyue/mindgarden/backend/internal/model/persona"
)

// DefaultDebounceWindow 是判定一段用户发言结束的静默时长。
const DefaultDebounceWindow = 2500 * time.Millisecond

// Transcriber turns one chunk of raw audio into text. An empty result is
// tolerated and simply dropped.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Responder produces guidance text for a finalized utterance.
type Responder interface {
	GenerateReply(ctx context.Context, userText string, sessionCtx map[string]any) (string, error)
}

// Synthesizer renders speech audio for a reply. Failure degrades the turn
// to text-only, it never aborts it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// Sink delivers outbound messages for one session, in order.
type Sink interface {
	Send(v any) error
}

// Collaborators bundles the external services the session core calls out to.
type Collaborators struct {
	Transcriber Transcriber
	Responder   Responder
	Synthesizer Synthesizer
}

// SessionParams carries the per-session configuration picked at connect time.
type SessionParams struct {
	Persona         persona.Persona
	SessionType     string
	AmbientCategory string
}

// Session is the per-connection state machine. All mutable state lives behind
// one mutex; inbound frames for a session arrive from a single reader loop,
// so the lock only arbitrates between that loop, the debounce timer and the
// in-flight response pipeline.
type Session struct {
	id     string
	params SessionParams
	collab Collaborators
	sink   Sink
	window time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	floor          Floor
	listened       bool
	fragments      []string
	lastFragmentAt time.Time
	debounceGen    uint64
	debounceTimer  *time.Timer
	respGen        uint64
	respCancel     context.CancelFunc
	startedAt      time.Time
	lastCheckIn    time.Time
	interactions   int
}

func newSession(id string, params SessionParams, collab Collaborators, sink Sink, window time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	return &Session{
		id:          id,
		params:      params,
		collab:      collab,
		sink:        sink,
		window:      window,
		ctx:         ctx,
		cancel:      cancel,
		floor:       FloorIdle,
		startedAt:   now,
		lastCheckIn: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Floor reports the current floor holder.
func (s *Session) Floor() Floor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floor
}

// Ended reports whether the session reached its terminal state.
func (s *Session) Ended() bool { return s.Floor() == FloorEnded }

// Stats returns the interaction counter and last check-in timestamp, used to
// persist the session record on teardown.
func (s *Session) Stats() (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactions, s.lastCheckIn
}

// Welcome speaks the opening prompt and claims the floor for the guide.
func (s *Session) Welcome() {
	audio := s.synthesize(s.ctx, welcomeText)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.floor != FloorIdle {
		// 用户已经先开口，欢迎语不再播报。
		return
	}
	s.sendLocked(message.NewSpeech(message.TypeSpeech, welcomeText, audio))
	s.floor = FloorAISpeaking
}

// HandleAudio processes one binary frame of user speech. While the guide is
// speaking this is a barge-in: the interruption notice goes out before the
// audio is handed to the transcriber.
func (s *Session) HandleAudio(chunk []byte) {
	s.mu.Lock()
	switch s.floor {
	case FloorEnded:
		s.mu.Unlock()
		return
	case FloorAISpeaking:
		s.sendLocked(message.NewInterrupted(interruptedText))
		s.stopSpeakingLocked()
		s.startListeningLocked()
		metricBargeIns.Inc()
		log.Printf("[conversation] barge-in session=%s", s.id)
	default:
		s.startListeningLocked()
	}
	s.mu.Unlock()

	text, err := s.collab.Transcriber.Transcribe(s.ctx, chunk)
	if err != nil {
		log.Printf("[conversation] transcription failed session=%s: %v", s.id, err)
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.floor == FloorEnded {
		return
	}
	s.sendLocked(message.NewTranscript(text, time.Now()))
	s.appendFragmentLocked(text)
}

// HandleCommand applies one inbound control command. Unknown commands are
// ignored without touching session state.
func (s *Session) HandleCommand(cmd message.Command) {
	switch cmd.Command {
	case message.CommandStartSpeaking:
		s.mu.Lock()
		if s.floor == FloorEnded {
			s.mu.Unlock()
			return
		}
		if s.floor == FloorAISpeaking {
			s.sendLocked(message.NewInterrupted(interruptedText))
			s.stopSpeakingLocked()
			metricBargeIns.Inc()
		}
		s.startListeningLocked()
		s.mu.Unlock()

	case message.CommandStopSpeaking:
		s.mu.Lock()
		if s.floor != FloorEnded {
			s.stopSpeakingLocked()
		}
		s.mu.Unlock()

	case message.CommandCheckIn:
		s.announce(message.TypeCheckIn, checkInText)

	case message.CommandBreathingExercise:
		s.announce(message.TypeBreathingExercise, breathingText)

	case message.CommandEndSession:
		s.End()

	default:
		log.Printf("[conversation] ignoring unknown command %q session=%s", cmd.Command, s.id)
	}
}

// End transitions to the terminal state, cancels outstanding work and speaks
// the farewell. Safe to call more than once.
func (s *Session) End() {
	s.mu.Lock()
	if s.floor == FloorEnded {
		s.mu.Unlock()
		return
	}
	s.floor = FloorEnded
	s.stopWorkLocked()
	s.mu.Unlock()

	audio := s.synthesize(s.ctx, farewellText)
	if err := s.sink.Send(message.NewSpeech(message.TypeSessionEnd, farewellText, audio)); err != nil {
		log.Printf("[conversation] send session_end failed session=%s: %v", s.id, err)
	}
	log.Printf("[conversation] session ended session=%s interactions=%d", s.id, s.interactions)
}

// shutdown tears the session down without a farewell (disconnect path).
func (s *Session) shutdown() {
	s.mu.Lock()
	s.floor = FloorEnded
	s.stopWorkLocked()
	s.mu.Unlock()
	s.cancel()
}

// announce speaks a fixed prompt (check-in, breathing exercise). Suppressed
// whenever the user holds the floor: the guide must not talk over them.
func (s *Session) announce(msgType, text string) {
	s.mu.Lock()
	if s.floor == FloorEnded || s.floor == FloorUserListening {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	audio := s.synthesize(s.ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	// 合成期间用户可能已经开口，再次确认后才播报。
	if s.floor == FloorEnded || s.floor == FloorUserListening {
		return
	}
	s.sendLocked(message.NewSpeech(msgType, text, audio))
	s.floor = FloorAISpeaking
}

// appendFragmentLocked buffers one transcript fragment and re-arms the quiet
// window. Each call bumps the generation so that only the newest timer can
// finalize the buffer.
func (s *Session) appendFragmentLocked(text string) {
	s.fragments = append(s.fragments, text)
	s.lastFragmentAt = time.Now()
	s.debounceGen++
	gen := s.debounceGen
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.window, func() { s.finalizeUtterance(gen) })
}

// finalizeUtterance runs when a debounce timer fires. A timer that lost the
// generation race, or that sees a fragment newer than its schedule, performs
// no action and leaves all state to its successor.
func (s *Session) finalizeUtterance(gen uint64) {
	s.mu.Lock()
	if s.floor == FloorEnded || gen != s.debounceGen {
		s.mu.Unlock()
		metricStaleDebounce.Inc()
		return
	}
	if time.Since(s.lastFragmentAt) < s.window {
		s.mu.Unlock()
		metricStaleDebounce.Inc()
		return
	}

	utterance := strings.TrimSpace(strings.Join(s.fragments, " "))
	s.fragments = nil
	if utterance == "" {
		s.mu.Unlock()
		return
	}

	// Starting a new pipeline always cancels its predecessor first.
	if s.respCancel != nil {
		s.respCancel()
	}
	s.respGen++
	gen2 := s.respGen
	ctx, cancel := context.WithCancel(s.ctx)
	s.respCancel = cancel
	sessionCtx := s.contextMapLocked()
	started := time.Now()
	metricUtterances.Inc()
	s.mu.Unlock()

	go s.respond(ctx, gen2, utterance, sessionCtx, started)
}

// respond is the response pipeline: generate → re-check floor → synthesize →
// deliver. Every step checks its cancellation token before producing any
// observable effect.
func (s *Session) respond(ctx context.Context, gen uint64, utterance string, sessionCtx map[string]any, started time.Time) {
	reply, err := s.collab.Responder.GenerateReply(ctx, utterance, sessionCtx)
	if ctx.Err() != nil {
		metricPipelineCancelled.Inc()
		return
	}
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("[conversation] reply generation failed session=%s: %v", s.id, err)
		}
		reply = FallbackReply
	}

	s.mu.Lock()
	if !s.ownsResponseLocked(ctx, gen) {
		s.mu.Unlock()
		metricPipelineCancelled.Inc()
		return
	}
	if len(s.fragments) > 0 || s.lastFragmentAt.After(started) {
		// 用户在生成期间又开口了，这一轮保持沉默。
		s.mu.Unlock()
		metricPipelineCancelled.Inc()
		return
	}
	s.floor = FloorAISpeaking
	s.mu.Unlock()

	audio, synthErr := s.collab.Synthesizer.Synthesize(ctx, reply, s.params.Persona.VoiceID)
	if ctx.Err() != nil {
		metricPipelineCancelled.Inc()
		return
	}
	if synthErr != nil {
		log.Printf("[conversation] synthesis failed session=%s: %v", s.id, synthErr)
		audio = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsResponseLocked(ctx, gen) || s.floor != FloorAISpeaking {
		metricPipelineCancelled.Inc()
		return
	}
	s.sendLocked(message.NewConversation(utterance, reply, audio))
	s.interactions++
	s.lastCheckIn = time.Now()
	s.floor = FloorUserListening
	s.respCancel = nil
	metricPipelineCompleted.Inc()
}

// ownsResponseLocked reports whether this pipeline invocation is still the
// current one and may produce observable effects.
func (s *Session) ownsResponseLocked(ctx context.Context, gen uint64) bool {
	return ctx.Err() == nil && gen == s.respGen && s.floor != FloorEnded
}

// stopSpeakingLocked cancels any in-flight response and, if the guide held
// the floor, hands it back.
func (s *Session) stopSpeakingLocked() {
	if s.respCancel != nil {
		s.respCancel()
		s.respCancel = nil
	}
	s.respGen++
	if s.floor == FloorAISpeaking {
		if s.listened {
			s.floor = FloorUserListening
		} else {
			s.floor = FloorIdle
		}
	}
}

func (s *Session) startListeningLocked() {
	s.floor = FloorUserListening
	s.listened = true
}

// stopWorkLocked cancels the debounce timer and any in-flight pipeline.
func (s *Session) stopWorkLocked() {
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
	s.debounceGen++
	if s.respCancel != nil {
		s.respCancel()
		s.respCancel = nil
	}
	s.respGen++
	s.fragments = nil
}

func (s *Session) contextMapLocked() map[string]any {
	return map[string]any{
		"session_type":      s.params.SessionType,
		"ambient_category":  s.params.AmbientCategory,
		"interaction_count": s.interactions,
		"elapsed_minutes":   int(time.Since(s.startedAt).Minutes()),
	}
}

func (s *Session) sendLocked(v any) {
	if err := s.sink.Send(v); err != nil {
		log.Printf("[conversation] send failed session=%s: %v", s.id, err)
	}
}

// synthesize renders audio for a fixed prompt; failure yields empty audio.
func (s *Session) synthesize(ctx context.Context, text string) []byte {
	audio, err := s.collab.Synthesizer.Synthesize(ctx, text, s.params.Persona.VoiceID)
	if err != nil {
		log.Printf("[conversation] synthesis failed session=%s: %v", s.id, err)
		return nil
	}
	return audio
}
