package honeypot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatSendsKeyAndDecodesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "hp_test" {
			t.Errorf("X-API-Key = %q, want hp_test", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionID != "sess-1" || req.Message.Text != "hello" {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(ChatResponse{Status: "success", Reply: "Who is this?"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "hp_test")
	reply, err := c.Chat(context.Background(), "sess-1", "hello")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Who is this?" {
		t.Errorf("reply = %q, want %q", reply, "Who is this?")
	}
}

func TestVoiceRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice-detection" {
			t.Errorf("path = %q, want /api/voice-detection", r.URL.Path)
		}
		var req VoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Language != "Tamil" || req.AudioFormat != "mp3" {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(VoiceResponse{
			Status:          "success",
			Language:        req.Language,
			Classification:  "AI_GENERATED",
			ConfidenceScore: 0.93,
			Explanation:     "spectral artifacts",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "hp_test")
	resp, err := c.Voice(context.Background(), VoiceRequest{
		Language:    "Tamil",
		AudioFormat: "mp3",
		AudioBase64: "AAAA",
	})
	if err != nil {
		t.Fatalf("Voice: %v", err)
	}
	if resp.Classification != "AI_GENERATED" {
		t.Errorf("classification = %q, want AI_GENERATED", resp.Classification)
	}
	if resp.ConfidenceScore != 0.93 {
		t.Errorf("confidence = %v, want 0.93", resp.ConfidenceScore)
	}
}

func TestVoiceSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "hp_test")
	if _, err := c.Voice(context.Background(), VoiceRequest{Language: "Hindi", AudioFormat: "mp3", AudioBase64: "AAAA"}); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
