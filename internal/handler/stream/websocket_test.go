package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wellnexa/backend/internal/model/chat"
)

type frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read err: %v", err)
	}
	return f
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	session, _, _ := f.composer.Open(t.Context())
	conn := dial(t, srv, session.ID)

	connected := readFrame(t, conn)
	if connected.Type != "connected" {
		t.Fatalf("expected connected frame, got %s", connected.Type)
	}

	if err := conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "Everything feels hopeless"}}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	var types []string
	var reply chat.Message
	for len(types) < 3 {
		fr := readFrame(t, conn)
		types = append(types, fr.Type)
		if fr.Type == "message" {
			if err := json.Unmarshal(fr.Data, &reply); err != nil {
				t.Fatalf("decode reply: %v", err)
			}
		}
	}

	if strings.Join(types, ",") != "user,typing,message" {
		t.Fatalf("unexpected frame order %v", types)
	}
	if reply.Category != chat.CategoryCrisis || reply.Content != f.tables.CrisisResponse {
		t.Fatalf("expected crisis reply, got %+v", reply)
	}
}

func TestWebSocketRejectsEmptyText(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	session, _, _ := f.composer.Open(t.Context())
	conn := dial(t, srv, session.ID)
	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "  "}}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if fr := readFrame(t, conn); fr.Type != "error" {
		t.Fatalf("expected error frame, got %s", fr.Type)
	}

	transcript, _ := f.chatSvc.LoadTranscript(t.Context(), session.ID)
	if len(transcript) != 1 {
		t.Fatalf("expected only the greeting, got %d messages", len(transcript))
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}
