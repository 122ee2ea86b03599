package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnexa/backend/internal/model/chat"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestAskLocal(t *testing.T) {
	out, err := run(t, "ask", "I'm", "so", "overwhelmed")
	require.NoError(t, err)
	assert.Contains(t, out, "Assistant:")
	assert.Contains(t, out, "Feeling overwhelmed is common")
}

func TestAskCrisisShowsContacts(t *testing.T) {
	out, err := run(t, "ask", "I want to end it all")
	require.NoError(t, err)
	assert.Contains(t, out, "I'm very concerned")
	assert.Contains(t, out, "Crisis Helpline: 988")
}

func TestAskRejectsBlank(t *testing.T) {
	_, err := run(t, "ask", "  ")
	assert.Error(t, err)
}

func TestAskViaServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chat.Message{Sender: chat.SenderAssistant, Content: "from the server", Category: chat.CategoryNormal})
	}))
	defer srv.Close()

	out, err := run(t, "ask", "hello", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "from the server")
}

func TestAskUsesServerFromEnv(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/respond", r.URL.Path)
		_ = json.NewEncoder(w).Encode(chat.Message{Sender: chat.SenderAssistant, Content: "remote reply", Category: chat.CategoryNormal})
	}))
	defer srv.Close()
	t.Setenv("WELLNEXA_SERVER_URL", srv.URL)

	out, err := run(t, "ask", "hello")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, out, "remote reply")
}

func TestServerFlagOverridesEnv(t *testing.T) {
	t.Setenv("WELLNEXA_SERVER_URL", "http://127.0.0.1:1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chat.Message{Sender: chat.SenderAssistant, Content: "flag reply", Category: chat.CategoryNormal})
	}))
	defer srv.Close()

	out, err := run(t, "ask", "hello", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "flag reply")
}

func TestCounselors(t *testing.T) {
	out, err := run(t, "counselors")
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Sarah Johnson (4.9)")
	assert.Contains(t, out, "Dr. Emily Rodriguez")
}

func TestResourcesFilter(t *testing.T) {
	out, err := run(t, "resources", "--category", "meditation")
	require.NoError(t, err)
	assert.Contains(t, out, "Guided Meditation for Students")
	assert.NotContains(t, out, "Stress Management Techniques")

	out, err = run(t, "resources", "--category", "Finance")
	require.NoError(t, err)
	assert.Equal(t, "No resources found.", strings.TrimSpace(out))
}

func TestContentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `
chat:
  greeting: hi
  crisisKeywords: [crisis word]
  crisisResponse: get help now
  topics:
    - keyword: exams
      response: exams are hard
  fallbacks: [tell me more]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := run(t, "--content", path, "ask", "my exams")
	require.NoError(t, err)
	assert.Contains(t, out, "exams are hard")

	_, err = run(t, "--content", filepath.Join(t.TempDir(), "missing.yaml"), "ask", "hi")
	assert.Error(t, err)
}
