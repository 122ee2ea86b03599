package booking

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/model/booking"
	bookingService "github.com/wellnexa/backend/internal/service/booking"
	"github.com/wellnexa/backend/pkg/utils"
)

// Handler 预约表单的HTTP处理器
type Handler struct {
	bookings *bookingService.Service
	logger   *slog.Logger
}

// New 创建预约处理器
func New(bookings *bookingService.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{bookings: bookings, logger: logger}
}

// RegisterRoutes 注册预约相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/booking/options", h.handleOptions)
	r.Post("/bookings", h.handleSubmit)
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type submitResponse struct {
	Booking booking.Booking `json:"booking"`
	Status  string          `json:"status"`
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.bookings.Options())
}

// handleSubmit 校验预约请求并交给下游处理，不做持久化
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.bookings.Submit(r.Context(), req)
	if err != nil {
		var verr *bookingService.ValidationError
		if errors.As(err, &verr) {
			utils.RespondJSON(w, http.StatusBadRequest, validationResponse{Error: bookingService.ErrInvalidBooking.Error(), Fields: verr.Fields})
			return
		}
		h.logger.Error("booking submit failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to submit booking")
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, submitResponse{Booking: b, Status: "received"})
}
