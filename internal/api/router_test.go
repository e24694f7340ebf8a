package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/auth"
	"github.com/shindesiddhant-415/Honeypot/internal/engage"
	"github.com/shindesiddhant-415/Honeypot/internal/reply"
	"github.com/shindesiddhant-415/Honeypot/internal/report"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
)

const testKey = "sk_test_123456789"

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()

	sessions := store.NewMemoryStore()
	dispatcher := report.NewDispatcher("http://127.0.0.1:1/callback", 200*time.Millisecond, nil, zerolog.Nop())
	strategist := reply.NewStrategist(rand.New(rand.NewSource(1)))
	engine := engage.NewEngine(sessions, strategist, dispatcher, engage.DefaultReportThreshold, zerolog.Nop())

	router := NewRouter(zerolog.Nop(), Deps{
		Keys:     auth.NewKeyring([]string{testKey}, nil),
		Engine:   engine,
		Sessions: sessions,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func postChat(t *testing.T, srv *httptest.Server, apiKey, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/chat", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func chatBody(sessionID, text string) string {
	return `{"sessionId":"` + sessionID + `","message":{"sender":"scammer","text":"` + text + `","timestamp":"2024-01-01T10:00:00Z"}}`
}

func TestChatRejectsUnknownKey(t *testing.T) {
	srv, sessions := newTestServer(t)

	resp := postChat(t, srv, "sk_wrong", chatBody("s1", "your bank account is suspended"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	// Authorization is checked before any session access.
	sess, _ := sessions.Get(context.Background(), "s1")
	if sess != nil {
		t.Error("no session may be created for an unauthenticated request")
	}
}

func TestChatRejectsMissingKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postChat(t, srv, "", chatBody("s1", "hello"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestChatEngagedFlow(t *testing.T) {
	srv, sessions := newTestServer(t)

	resp := postChat(t, srv, testKey, chatBody("s1", "your bank account is suspended, verify KYC now"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Status string `json:"status"`
		Reply  string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "success" {
		t.Errorf("status field = %q, want success", out.Status)
	}
	if out.Reply != "Who is this? Why are you messaging me?" {
		t.Errorf("reply = %q, want the confused opener", out.Reply)
	}

	sess, _ := sessions.Get(context.Background(), "s1")
	if sess == nil || !sess.ScamDetected || len(sess.History) != 2 {
		t.Errorf("session state unexpected: %+v", sess)
	}
}

func TestChatValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{not json`},
		{"missing sessionId", `{"message":{"sender":"scammer","text":"hi","timestamp":"t"}}`},
		{"empty text", chatBody("s1", "")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postChat(t, srv, testKey, tc.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestVoiceDetectionUnconfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/voice-detection",
		strings.NewReader(`{"language":"English","audioFormat":"mp3","audioBase64":"aGVsbG8="}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no voice service configured", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	postChat(t, srv, testKey, chatBody("s1", "urgent kyc")).Body.Close()
	postChat(t, srv, testKey, chatBody("s2", "hello")).Body.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/stats", nil)
	req.Header.Set("X-API-Key", testKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out struct {
		Sessions store.Stats `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Sessions.Sessions != 2 || out.Sessions.ScamSessions != 1 {
		t.Errorf("stats = %+v, want 2 sessions with 1 scam", out.Sessions)
	}
}

func TestGetSession(t *testing.T) {
	srv, _ := newTestServer(t)

	postChat(t, srv, testKey, chatBody("s1", "verify your upi")).Body.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/sessions/s1", nil)
	req.Header.Set("X-API-Key", testKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/sessions/unknown", nil)
	req.Header.Set("X-API-Key", testKey)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown session", resp.StatusCode)
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 without credentials", resp.StatusCode)
	}
}
