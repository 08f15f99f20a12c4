package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSetThenGetReturnsValue(t *testing.T) {
	s := New[string]()
	s.Set("k", "v", time.Minute)

	got, ok := s.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want %q, true", got, ok, "v")
	}
}

func TestGetMissingKeyIsAbsent(t *testing.T) {
	s := New[int]()
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("expected absent for missing key")
	}
}

func TestExpiredEntryIsAbsentAndRemoved(t *testing.T) {
	s := New[string]()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := base
	s.SetNow(func() time.Time { return now })

	s.Set("k", "v", 30*time.Second)

	// exactly at expiry the entry is still valid
	now = base.Add(30 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Fatalf("entry at expiry instant should still be present")
	}

	// one tick past expiry it behaves as absent and is swept
	now = base.Add(30*time.Second + time.Nanosecond)
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expired entry should be absent")
	}
	if n := s.Len(); n != 0 {
		t.Fatalf("Len = %d after expiry sweep; want 0", n)
	}

	// a fresh set sees no stale state
	s.Set("k", "v2", 30*time.Second)
	got, ok := s.Get("k")
	if !ok || got != "v2" {
		t.Fatalf("Get after re-set = %q, %v; want %q, true", got, ok, "v2")
	}
}

func TestInvalidateRemovesRegardlessOfTTL(t *testing.T) {
	s := New[string]()
	s.Set("k", "v", time.Hour)
	s.Invalidate("k")
	if _, ok := s.Get("k"); ok {
		t.Fatalf("invalidated entry should be absent")
	}

	// idempotent
	s.Invalidate("k")
}

func TestInvalidatePrefixRemovesOnlyMatchingKeys(t *testing.T) {
	s := New[int]()
	s.Set("cases:u1", 1, time.Hour)
	s.Set("cases:u2", 2, time.Hour)
	s.Set("summary:u1", 3, time.Hour)

	s.InvalidatePrefix("cases:")

	if _, ok := s.Get("cases:u1"); ok {
		t.Fatalf("cases:u1 should be gone")
	}
	if _, ok := s.Get("cases:u2"); ok {
		t.Fatalf("cases:u2 should be gone")
	}
	if v, ok := s.Get("summary:u1"); !ok || v != 3 {
		t.Fatalf("summary:u1 should survive prefix invalidation")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := New[int]()
	for i := 0; i < 8; i++ {
		s.Set(fmt.Sprintf("k%d", i), i, time.Hour)
	}
	s.Clear()
	if n := s.Len(); n != 0 {
		t.Fatalf("Len = %d after Clear; want 0", n)
	}
}

func TestConcurrentWritersLastWriterWins(t *testing.T) {
	s := New[int]()

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s.Set("k", val, time.Minute)
				s.Get("k")
			}
		}(w)
	}
	wg.Wait()

	got, ok := s.Get("k")
	if !ok {
		t.Fatalf("entry should be present after concurrent writes")
	}
	if got != 0 && got != 1 {
		t.Fatalf("stored value %d is neither writer's value", got)
	}
}

func TestConcurrentMixedOperations(t *testing.T) {
	s := New[int]()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("cases:u%d", id)
			for i := 0; i < 200; i++ {
				s.Set(key, i, time.Minute)
				s.Get(key)
				if i%50 == 0 {
					s.InvalidatePrefix("cases:")
				}
			}
		}(w)
	}
	wg.Wait()
}
