package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	"github.com/wanyue/mindgarden/backend/pkg/utils"
)

// Synthesizer renders speech audio for arbitrary text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// Handler 语音合成的HTTP处理器
type Handler struct {
	synth    Synthesizer
	personas persona.Store
}

// New 创建语音处理器
func New(synth Synthesizer, personas persona.Store) *Handler {
	return &Handler{synth: synth, personas: personas}
}

// RegisterRoutes 注册语音相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-speech", h.handleGenerateSpeech)
}

// handleGenerateSpeech 将文本合成为语音并以base64返回
func (h *Handler) handleGenerateSpeech(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message      string `json:"message"`
		VoicePersona string `json:"voice_persona"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if payload.VoicePersona == "" {
		payload.VoicePersona = persona.DefaultID
	}

	p, ok := h.personas.FindByID(payload.VoicePersona)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}

	audio, err := h.synth.Synthesize(r.Context(), payload.Message, p.VoiceID)
	if err != nil {
		log.Printf("[speech] synthesis failed persona=%s: %v", payload.VoicePersona, err)
		utils.RespondError(w, http.StatusInternalServerError, "speech generation failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"audio_data":    base64.StdEncoding.EncodeToString(audio),
		"message":       payload.Message,
		"voice_persona": payload.VoicePersona,
	})
}
