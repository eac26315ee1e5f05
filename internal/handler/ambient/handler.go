package ambient

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
	"github.com/wanyue/mindgarden/backend/pkg/utils"
)

// TrackFinder resolves a category into playable tracks.
type TrackFinder interface {
	TracksForCategory(ctx context.Context, category ambientmodel.Category) ([]ambientmodel.Track, error)
}

// Handler 背景音乐相关的HTTP处理器
type Handler struct {
	categories ambientmodel.Store
	finder     TrackFinder
}

// New 创建背景音乐处理器；finder 为 nil 时仅提供分类校验。
func New(categories ambientmodel.Store, finder TrackFinder) *Handler {
	return &Handler{categories: categories, finder: finder}
}

// RegisterRoutes 注册背景音乐相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/meditation-categories", h.handleListCategories)
	r.Get("/music/{category}", h.handleGetMusic)
}

// handleListCategories 列出所有冥想音乐分类
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"categories": h.categories.List()})
}

// handleGetMusic 校验分类并检索曲目
func (h *Handler) handleGetMusic(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category")

	category, ok := h.categories.FindByID(categoryID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "invalid category")
		return
	}

	if h.finder == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "music lookup unavailable")
		return
	}

	tracks, err := h.finder.TracksForCategory(r.Context(), category)
	if err != nil {
		log.Printf("[ambient] music lookup failed category=%s: %v", categoryID, err)
		utils.RespondError(w, http.StatusInternalServerError, "music search failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"category": category.ID,
		"name":     category.Name,
		"tracks":   tracks,
	})
}
