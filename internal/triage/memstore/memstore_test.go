package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/linnemanlabs/quicktriage/internal/triage"
)

func report(id string) *triage.Report {
	return &triage.Report{
		ID:       id,
		Symptoms: "fever",
		Age:      30,
		Results: []triage.Condition{
			{Name: "Influenza", Confidence: 0.95, Summary: "flu"},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, report("r-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected report to be found")
	}
	if got.ID != "r-1" || got.Symptoms != "fever" {
		t.Errorf("got %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok, err := s.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing ID")
	}
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	r := report("r-2")
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}
	r.IsUrgent = true
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, ok, _ := s.Get(ctx, "r-2")
	if !ok || !got.IsUrgent {
		t.Errorf("overwrite lost: %+v", got)
	}

	recent, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Recent = %d entries after overwrite, want 1", len(recent))
	}
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, report("r-3")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _, _ := s.Get(ctx, "r-3")
	got.Results[0].Name = "mutated"
	got.Symptoms = "mutated"

	again, _, _ := s.Get(ctx, "r-3")
	if again.Results[0].Name != "Influenza" || again.Symptoms != "fever" {
		t.Error("store mutated through returned report")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	for i := range 5 {
		if err := s.Put(ctx, report(fmt.Sprintf("r-%d", i))); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent = %d, want 3", len(recent))
	}
	want := []string{"r-4", "r-3", "r-2"}
	for i, id := range want {
		if recent[i].ID != id {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, id)
		}
	}
}

func TestRecent_ZeroLimit(t *testing.T) {
	t.Parallel()

	s := New()
	if err := s.Put(context.Background(), report("r-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	recent, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Recent(0) = %d entries, want 0", len(recent))
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n * 2)

	for i := range n {
		id := fmt.Sprintf("id-%d", i)

		go func() {
			defer wg.Done()
			_ = s.Put(ctx, report(id))
		}()

		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, id)
			_, _ = s.Recent(ctx, 10)
		}()
	}

	wg.Wait()
}
