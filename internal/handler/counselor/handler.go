package counselor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/pkg/utils"
)

// Handler counselor目录的HTTP处理器
type Handler struct {
	counselors counselor.Store
}

// New 创建counselor处理器
func New(counselors counselor.Store) *Handler {
	return &Handler{counselors: counselors}
}

// RegisterRoutes 注册counselor相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/counselors", h.handleListCounselors)
	r.Get("/counselors/{counselorID}", h.handleGetCounselor)
}

// handleListCounselors 列出所有counselor
func (h *Handler) handleListCounselors(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.counselors.List())
}

func (h *Handler) handleGetCounselor(w http.ResponseWriter, r *http.Request) {
	c, ok := h.counselors.FindByID(chi.URLParam(r, "counselorID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "counselor not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}
