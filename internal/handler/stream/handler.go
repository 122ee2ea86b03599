package stream

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/model/chat"
	chatService "github.com/wellnexa/backend/internal/service/chat"
	"github.com/wellnexa/backend/pkg/utils"
)

// Handler streams a submitted message and its delayed reply via Server-Sent Events.
type Handler struct {
	composer *chatService.Composer
	logger   *slog.Logger
}

// New creates a new stream handler
func New(composer *chatService.Composer, logger *slog.Logger) *Handler {
	return &Handler{composer: composer, logger: logger}
}

// RegisterRoutes registers the SSE endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

// Event is one SSE payload.
type Event struct {
	Event     string        `json:"event"`
	SessionID string        `json:"sessionId,omitempty"`
	Message   *chat.Message `json:"message,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userMessage := r.URL.Query().Get("message")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	pending, err := h.composer.Submit(r.Context(), sessionID, userMessage)
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("stream submit failed", "session", sessionID, "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	user := pending.User
	h.send(w, flusher, Event{Event: "user", SessionID: sessionID, Message: &user})
	h.send(w, flusher, Event{Event: "typing", SessionID: sessionID})

	select {
	case <-r.Context().Done():
		// The reply is still appended to the transcript.
		h.logger.Debug("stream client went away before reply", "session", sessionID)
		return
	case reply, ok := <-pending.Reply():
		if !ok {
			h.send(w, flusher, Event{Event: "error", SessionID: sessionID, Error: "session ended"})
			return
		}
		h.send(w, flusher, Event{Event: "message", SessionID: sessionID, Message: &reply})
	}

	h.send(w, flusher, Event{Event: "end", SessionID: sessionID, Finished: true})
	h.logger.Debug("stream completed", "session", sessionID)
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, event Event) {
	if err := utils.SendSSEEvent(w, flusher, event.Event, event); err != nil {
		h.logger.Debug("failed to write sse event", "event", event.Event, "error", err)
	}
}
