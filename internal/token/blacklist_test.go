package token

import (
	"sync"
	"testing"
	"time"
)

func TestBlacklist_AddContains(t *testing.T) {
	bl := NewBlacklist(time.Hour)
	defer bl.Stop()

	if bl.Contains("tok-1") {
		t.Error("Empty blacklist should not contain anything")
	}

	bl.Add("tok-1")
	if !bl.Contains("tok-1") {
		t.Error("Expected added token to be contained")
	}
	if bl.Contains("tok-2") {
		t.Error("Unrelated token should not be contained")
	}
}

func TestBlacklist_RejectsWhileCryptographicallyValid(t *testing.T) {
	signer, err := NewSigner()
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	bl := NewBlacklist(time.Hour)
	defer bl.Stop()

	tok := signer.Mint("session-123", 10*time.Minute)
	bl.Add(tok)

	// Still a valid signature, but consumed.
	if _, ok := signer.Verify(tok); !ok {
		t.Fatal("Token should still verify cryptographically")
	}
	if !bl.Contains(tok) {
		t.Error("Consumed token must stay blacklisted until the next clear")
	}
}

func TestBlacklist_Clear(t *testing.T) {
	bl := NewBlacklist(time.Hour)
	defer bl.Stop()

	bl.Add("tok-1")
	bl.Add("tok-2")

	if count := bl.Clear(); count != 2 {
		t.Errorf("Clear() = %d, expected 2", count)
	}
	if bl.Contains("tok-1") || bl.Contains("tok-2") {
		t.Error("Blacklist should be empty after clear")
	}
	if count := bl.Clear(); count != 0 {
		t.Errorf("Clear() on empty set = %d, expected 0", count)
	}
}

func TestBlacklist_ClearLoop(t *testing.T) {
	bl := NewBlacklist(20 * time.Millisecond)
	defer bl.Stop()

	bl.Add("tok-1")

	deadline := time.Now().Add(2 * time.Second)
	for bl.Contains("tok-1") {
		if time.Now().After(deadline) {
			t.Fatal("Clear loop did not empty the blacklist in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBlacklist_ConcurrentAccess(t *testing.T) {
	bl := NewBlacklist(10 * time.Millisecond)
	defer bl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				tok := string(rune('a'+n)) + "-token"
				bl.Add(tok)
				bl.Contains(tok)
			}
		}(i)
	}
	wg.Wait()
}
