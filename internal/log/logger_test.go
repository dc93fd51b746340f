package log

import (
	"sync"
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	events := []LogEvent{
		{Event: EventLogin, Username: "ada"},
		{Event: EventLogout, Username: "ada"},
		{Event: EventAPIError, Operation: "list_days", Status: 500, Error: "boom"},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("len = %d, want %d", len(got), len(events))
	}
	for i, e := range events {
		if got[i].Event != e.Event || got[i].Username != e.Username {
			t.Errorf("event %d = %+v, want %+v", i, got[i], e)
		}
		if got[i].Time.IsZero() {
			t.Errorf("event %d has zero time, want auto-filled", i)
		}
	}
	if got[2].Status != 500 || got[2].Error != "boom" {
		t.Errorf("api_error fields not preserved: %+v", got[2])
	}
}

func TestAppendPreservesExplicitTime(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stamp := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	if err := logger.Append(LogEvent{Event: EventBootstrap, Time: stamp}); err != nil {
		t.Fatal(err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Time.Equal(stamp) {
		t.Errorf("time = %v, want %v", got[0].Time, stamp)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}

func TestConcurrentAppends(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := logger.Append(LogEvent{Event: EventLogin}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Errorf("len = %d, want %d (no interleaved lines)", len(got), n)
	}
}
