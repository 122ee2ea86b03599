package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatService "github.com/wellnexa/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// WebSocketHandler serves the live chat socket.
type WebSocketHandler struct {
	chatSvc  *chatService.Service
	composer *chatService.Composer
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a websocket chat handler. checkOrigin may be nil
// to accept every origin.
func NewWebSocketHandler(chatSvc *chatService.Service, composer *chatService.Composer, logger *slog.Logger, checkOrigin func(*http.Request) bool) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		chatSvc:  chatSvc,
		composer: composer,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TextMessage is the payload of an inbound "text" frame.
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// socket serialises writes; replies arrive from their own goroutines.
type socket struct {
	conn      *websocket.Conn
	sessionID string
	mu        sync.Mutex
}

func (s *socket) send(msgType string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(outgoingMessage{
		Type:      msgType,
		SessionID: s.sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *socket) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("websocket connected", "session", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sock := &socket{conn: conn, sessionID: sessionID}

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.pingLoop(ctx, sock)

	if err := sock.send("connected", map[string]any{"transcript": transcript}); err != nil {
		return
	}

	var inflight sync.WaitGroup
	defer func() {
		cancel()
		inflight.Wait()
	}()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", "session", sessionID, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "text":
			h.handleText(ctx, sock, msg.Data, &inflight)
		default:
			_ = sock.send("error", map[string]string{"message": "unsupported message type: " + msg.Type})
		}
	}
}

func (h *WebSocketHandler) handleText(ctx context.Context, sock *socket, raw json.RawMessage, inflight *sync.WaitGroup) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		_ = sock.send("error", map[string]string{"message": "invalid text payload"})
		return
	}

	pending, err := h.composer.Submit(ctx, sock.sessionID, text.Text)
	if err != nil {
		msg := "failed to submit message"
		if errors.Is(err, chatService.ErrEmptyMessage) || errors.Is(err, chatService.ErrSessionNotFound) {
			msg = err.Error()
		}
		_ = sock.send("error", map[string]string{"message": msg})
		return
	}

	_ = sock.send("user", pending.User)
	_ = sock.send("typing", map[string]any{"replyDueAt": pending.DueAt})

	inflight.Add(1)
	go func() {
		defer inflight.Done()
		select {
		case <-ctx.Done():
		case reply, ok := <-pending.Reply():
			if !ok {
				_ = sock.send("error", map[string]string{"message": "session ended"})
				return
			}
			_ = sock.send("message", reply)
		}
	}()
}

func (h *WebSocketHandler) pingLoop(ctx context.Context, sock *socket) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sock.ping(); err != nil {
				return
			}
		}
	}
}
