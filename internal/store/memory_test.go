package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

func TestGetOrCreateReturnsWorkingCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.GetOrCreate(ctx, "sess-1", map[string]any{"channel": "sms"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ScamDetected || first.Reported {
		t.Error("new session must start with both flags false")
	}
	if len(first.History) != 0 {
		t.Errorf("new session history length = %d, want 0", len(first.History))
	}

	second, err := s.GetOrCreate(ctx, "sess-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expected independent working copies, got the same instance")
	}
	if second.Metadata["channel"] != "sms" {
		t.Error("metadata from first creation lost")
	}
}

func TestMutationsInvisibleUntilSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	working, err := s.GetOrCreate(ctx, "sess-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	working.Append(models.Message{Sender: models.SenderAdversary, Text: "hi"})
	working.ScamDetected = true

	installed, _ := s.Get(ctx, "sess-1")
	if len(installed.History) != 0 || installed.ScamDetected {
		t.Errorf("unsaved mutations leaked into the store: %+v", installed)
	}

	if err := s.Save(ctx, working); err != nil {
		t.Fatal(err)
	}
	installed, _ = s.Get(ctx, "sess-1")
	if len(installed.History) != 1 || !installed.ScamDetected {
		t.Errorf("saved state not visible: %+v", installed)
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	// Append-heavy writer on one session racing Stats and Get.
	// Run with -race: readers must only ever see installed copies.
	ctx := context.Background()
	s := NewMemoryStore()

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			sess, err := s.GetOrCreate(ctx, "hot", nil)
			if err != nil {
				t.Error(err)
				return
			}
			sess.Append(models.Message{Sender: models.SenderAdversary, Text: "ping"})
			if err := s.Save(ctx, sess); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := s.Stats(ctx); err != nil {
				t.Error(err)
				return
			}
			if sess, _ := s.Get(ctx, "hot"); sess != nil {
				_ = len(sess.History)
			}
		}
	}()

	wg.Wait()

	final, _ := s.Get(ctx, "hot")
	if len(final.History) != 200 {
		t.Errorf("final history length = %d, want 200", len(final.History))
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewMemoryStore()

	sess, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if sess != nil {
		t.Errorf("expected nil for unknown id, got %+v", sess)
	}
}

func TestConcurrentDistinctSessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", i)
			sess, err := s.GetOrCreate(ctx, id, nil)
			if err != nil {
				t.Error(err)
				return
			}
			sess.Append(models.Message{Sender: models.SenderAdversary, Text: "hi"})
			if err := s.Save(ctx, sess); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Sessions != n {
		t.Errorf("sessions = %d, want %d", st.Sessions, n)
	}
	if st.Messages != n {
		t.Errorf("messages = %d, want %d", st.Messages, n)
	}
}

func TestStatsCountsFlags(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.GetOrCreate(ctx, "a", nil)
	a.ScamDetected = true
	a.Reported = true
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}

	b, _ := s.GetOrCreate(ctx, "b", nil)
	b.ScamDetected = true
	if err := s.Save(ctx, b); err != nil {
		t.Fatal(err)
	}

	s.GetOrCreate(ctx, "c", nil)

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Sessions != 3 || st.ScamSessions != 2 || st.Reported != 1 {
		t.Errorf("stats = %+v, want 3 sessions, 2 scam, 1 reported", st)
	}
}
