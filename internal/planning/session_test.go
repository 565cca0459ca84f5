package planning

import (
	"context"
	"testing"
	"time"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	sess := newSession("abc")
	sess.UpdateTime = time.Now().Add(-time.Hour)
	s.Put(sess)

	if _, ok := s.Get("abc"); ok {
		t.Fatal("idle session past the TTL should be gone")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	old := newSession("old")
	old.UpdateTime = time.Now().Add(-time.Hour)
	s.Put(old)
	s.Put(newSession("live"))

	s.sweep(time.Now())
	if s.Len() != 1 {
		t.Fatalf("live sessions = %d, want 1", s.Len())
	}
	if _, ok := s.Get("live"); !ok {
		t.Fatal("fresh session should survive the sweep")
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore(0)
	sess := newSession("abc")
	sess.UpdateTime = time.Now().Add(-24 * time.Hour)
	s.Put(sess)

	if _, ok := s.Get("abc"); !ok {
		t.Fatal("zero TTL disables expiry")
	}
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	s := NewMemoryStore(0)
	sess := newSession("abc")
	dest := "Banff"
	sess.Collected.Destination = &dest
	s.Put(sess)

	got, _ := s.Get("abc")
	*got.Collected.Destination = "Mutated"
	got.StepCompletion[model.StepDates] = true

	again, _ := s.Get("abc")
	if *again.Collected.Destination != "Banff" {
		t.Fatalf("stored destination mutated to %q", *again.Collected.Destination)
	}
	if again.StepCompletion[model.StepDates] {
		t.Fatal("stored completion map mutated through a read copy")
	}
}

func TestMemoryStoreJanitor(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	s.Put(newSession("abc"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartJanitor(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Len() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("janitor did not sweep the idle session")
}
