package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	"github.com/wanyue/mindgarden/backend/pkg/utils"
)

// Handler persona服务的HTTP处理器
type Handler struct {
	personas persona.Store
}

// New 创建persona处理器
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voice-personas", h.handleListPersonas)
}

// handleListPersonas 列出所有声音人设
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"personas": h.personas.List()})
}
