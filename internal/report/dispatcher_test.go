package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

func scamSession() *models.Session {
	sess := models.NewSession("sess-42", nil)
	sess.ScamDetected = true
	sess.Append(models.Message{Sender: models.SenderAdversary, Text: "your bank account is suspended, verify kyc"})
	sess.Append(models.Message{Sender: models.SenderAgent, Text: "Who is this? Why are you messaging me?"})
	sess.Append(models.Message{Sender: models.SenderAdversary, Text: "send to upi id scammer@ybl to verify"})
	sess.Append(models.Message{Sender: models.SenderAgent, Text: "I don't know how to verify. Can you help me?"})
	return sess
}

func TestDeliverPostsPayload(t *testing.T) {
	var got models.ReportPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 2*time.Second, nil, zerolog.Nop())
	if err := d.Deliver(context.Background(), scamSession()); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if got.SessionID != "sess-42" {
		t.Errorf("sessionId = %q", got.SessionID)
	}
	if !got.ScamDetected {
		t.Error("scamDetected = false, want true")
	}
	if got.TotalMessagesExchanged != 4 {
		t.Errorf("totalMessagesExchanged = %d, want 4", got.TotalMessagesExchanged)
	}
	if len(got.ExtractedIntelligence.UPIIDs) != 1 || got.ExtractedIntelligence.UPIIDs[0] != "scammer@ybl" {
		t.Errorf("upiIds = %v, want [scammer@ybl]", got.ExtractedIntelligence.UPIIDs)
	}
	if got.AgentNotes != AgentNotes {
		t.Errorf("agentNotes = %q", got.AgentNotes)
	}
}

func TestDeliverReportsNon2xxAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 2*time.Second, nil, zerolog.Nop())
	if err := d.Deliver(context.Background(), scamSession()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestDispatchSwallowsFailure(t *testing.T) {
	// Unreachable endpoint: Dispatch must neither panic nor surface
	// the error to the caller.
	d := NewDispatcher("http://127.0.0.1:1/callback", 200*time.Millisecond, nil, zerolog.Nop())
	d.Dispatch(scamSession())
	time.Sleep(500 * time.Millisecond)
}

func TestBuildRecomputesIntelligence(t *testing.T) {
	d := NewDispatcher("http://unused", time.Second, nil, zerolog.Nop())
	sess := scamSession()

	first := d.Build(sess)
	second := d.Build(sess)
	if first.TotalMessagesExchanged != second.TotalMessagesExchanged {
		t.Error("builds over unchanged history must agree")
	}
	if len(first.ExtractedIntelligence.SuspiciousKeywords) == 0 {
		t.Error("expected suspicious keywords from scam history")
	}
}
