package resource

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/model/resource"
	"github.com/wellnexa/backend/pkg/utils"
)

// Handler 资源库的HTTP处理器
type Handler struct {
	resources resource.Store
}

// New 创建资源处理器
func New(resources resource.Store) *Handler {
	return &Handler{resources: resources}
}

// RegisterRoutes 注册资源相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleList)
	r.Get("/resources/categories", h.handleCategories)
	r.Get("/resources/{resourceID}", h.handleGet)
}

// handleList 按 category / type 过滤资源
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := resource.Filter{
		Category: query.Get("category"),
		Type:     query.Get("type"),
	}
	utils.RespondJSON(w, http.StatusOK, h.resources.List(filter))
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.resources.Categories())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "resourceID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "resource id must be an integer")
		return
	}
	res, ok := h.resources.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, res)
}
