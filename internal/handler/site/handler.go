package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/pkg/utils"
)

// Handler serves the landing page copy.
type Handler struct {
	site content.Site
}

// New 创建站点信息处理器
func New(site content.Site) *Handler {
	return &Handler{site: site}
}

// RegisterRoutes 注册站点相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/site", h.handleSite)
}

func (h *Handler) handleSite(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.site)
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
