package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	sessionservice "github.com/wanyue/mindgarden/backend/internal/service/session"
	"github.com/wanyue/mindgarden/backend/pkg/utils"
)

// Handler 会话记录的HTTP处理器
type Handler struct {
	sessions   *sessionservice.Service
	personas   persona.Store
	categories ambientmodel.Store
}

// New 创建会话处理器
func New(sessions *sessionservice.Service, personas persona.Store, categories ambientmodel.Store) *Handler {
	return &Handler{
		sessions:   sessions,
		personas:   personas,
		categories: categories,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
}

// handleCreateSession 创建一次冥想会话记录
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VoicePersona    string `json:"voice_persona"`
		SessionType     string `json:"session_type"`
		DurationMinutes int    `json:"duration_minutes"`
		AmbientCategory string `json:"ambient_category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.VoicePersona == "" {
		payload.VoicePersona = persona.DefaultID
	}
	if _, ok := h.personas.FindByID(payload.VoicePersona); !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}
	if payload.AmbientCategory != "" {
		if _, ok := h.categories.FindByID(payload.AmbientCategory); !ok {
			utils.RespondError(w, http.StatusBadRequest, "invalid category")
			return
		}
	}
	if payload.SessionType == "" {
		payload.SessionType = "guided_breathing"
	}
	if payload.DurationMinutes <= 0 {
		payload.DurationMinutes = 60
	}

	record, err := h.sessions.Create(r.Context(), sessionservice.CreateParams{
		UserID:          "default_user", // 接入鉴权后替换为真实用户
		VoicePersona:    payload.VoicePersona,
		SessionType:     payload.SessionType,
		DurationMinutes: payload.DurationMinutes,
		AmbientCategory: payload.AmbientCategory,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, record)
}

// handleGetSession 按ID查询会话记录
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	record, err := h.sessions.Get(r.Context(), sessionID)
	if errors.Is(err, sessionservice.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}
