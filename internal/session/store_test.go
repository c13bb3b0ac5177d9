package session

import (
	"sync"
	"testing"
	"time"
)

func TestStore_CreateAndGet(t *testing.T) {
	s := NewStore(15*time.Minute, time.Hour)
	defer s.Stop()

	created := s.Create("session-abc", "21CS042", "PHPSESSID=xyz")

	rec := s.Get("session-abc")
	if rec == nil {
		t.Fatal("Expected record immediately after create")
	}
	if rec.RegisterNo != "21CS042" {
		t.Errorf("RegisterNo = %q, expected %q", rec.RegisterNo, "21CS042")
	}
	if rec.Cookie != "PHPSESSID=xyz" {
		t.Errorf("Cookie = %q, expected %q", rec.Cookie, "PHPSESSID=xyz")
	}
	if !rec.ExpiresAt.Equal(created.CreatedAt.Add(15 * time.Minute)) {
		t.Errorf("ExpiresAt = %v, expected creation + TTL", rec.ExpiresAt)
	}

	if s.Get("missing") != nil {
		t.Error("Expected nil for unknown session id")
	}
}

func TestStore_CreateOverwrites(t *testing.T) {
	s := NewStore(15*time.Minute, time.Hour)
	defer s.Stop()

	s.Create("session-abc", "21CS042", "PHPSESSID=old")
	s.Create("session-abc", "21CS042", "PHPSESSID=new")

	rec := s.Get("session-abc")
	if rec == nil {
		t.Fatal("Expected record")
	}
	if rec.Cookie != "PHPSESSID=new" {
		t.Errorf("Cookie = %q, last login must win", rec.Cookie)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", s.Count())
	}
}

func TestStore_ExtendIsMonotonic(t *testing.T) {
	s := NewStore(15*time.Minute, time.Hour)
	defer s.Stop()

	s.Create("session-abc", "21CS042", "c")
	orig := s.Get("session-abc").ExpiresAt

	// Extending backwards is ignored.
	if !s.Extend("session-abc", orig.Add(-5*time.Minute)) {
		t.Fatal("Extend on existing record should return true")
	}
	if got := s.Get("session-abc").ExpiresAt; !got.Equal(orig) {
		t.Errorf("Expiry moved backwards: %v -> %v", orig, got)
	}

	// Extending forwards takes effect.
	later := orig.Add(10 * time.Minute)
	s.Extend("session-abc", later)
	if got := s.Get("session-abc").ExpiresAt; !got.Equal(later) {
		t.Errorf("ExpiresAt = %v, expected %v", got, later)
	}

	if s.Extend("missing", time.Now()) {
		t.Error("Extend on unknown session should return false")
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(15*time.Minute, time.Hour)
	defer s.Stop()

	s.Create("session-abc", "21CS042", "c")
	s.Remove("session-abc")

	if s.Get("session-abc") != nil {
		t.Error("Expected record gone after remove")
	}

	// Removing twice is fine.
	s.Remove("session-abc")
}

func TestStore_SweepEvictsExpired(t *testing.T) {
	s := NewStore(10*time.Millisecond, time.Hour)
	defer s.Stop()

	s.Create("expired", "21CS042", "c")
	time.Sleep(20 * time.Millisecond)
	s.Create("live", "21CS043", "c")

	s.sweep()

	if s.Get("expired") != nil {
		t.Error("Expected expired record to be evicted by sweep")
	}
	if s.Get("live") == nil {
		t.Error("Live record must survive the sweep")
	}
}

func TestStore_SweepLoop(t *testing.T) {
	s := NewStore(time.Millisecond, 20*time.Millisecond)
	defer s.Stop()

	s.Create("session-abc", "21CS042", "c")

	deadline := time.Now().Add(2 * time.Second)
	for s.Get("session-abc") != nil {
		if time.Now().After(deadline) {
			t.Fatal("Sweep loop did not evict expired record in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(time.Millisecond, 5*time.Millisecond)
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			for j := 0; j < 200; j++ {
				s.Create(id, "21CS042", "c")
				s.Get(id)
				s.Extend(id, time.Now().Add(time.Minute))
				s.Remove(id)
			}
		}(i)
	}
	wg.Wait()
}
