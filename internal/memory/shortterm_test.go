package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/merchkit/cross-sell-service/internal/domain"
)

func record(product string, recommended ...string) domain.InteractionRecord {
	return domain.InteractionRecord{
		ProductID:      product,
		RecommendedIDs: recommended,
		Mode:           string(domain.ModeRule),
	}
}

func TestStoreAndRetrieveNewestLast(t *testing.T) {
	m := NewShortTerm(10)
	m.Store("s1", record("prod_1"))
	m.Store("s1", record("prod_2"))
	m.Store("s1", record("prod_3"))

	got := m.Retrieve("s1", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ProductID != "prod_2" || got[1].ProductID != "prod_3" {
		t.Errorf("expected two newest, newest last: %s, %s", got[0].ProductID, got[1].ProductID)
	}

	if all := m.Retrieve("s1", 0); len(all) != 3 {
		t.Errorf("limit 0 should return whole buffer, got %d", len(all))
	}
}

func TestEvictionAtCap(t *testing.T) {
	m := NewShortTerm(3)
	for i := 1; i <= 5; i++ {
		m.Store("s1", record(fmt.Sprintf("prod_%d", i)))
	}

	got := m.Retrieve("s1", 0)
	if len(got) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(got))
	}
	if got[0].ProductID != "prod_3" || got[2].ProductID != "prod_5" {
		t.Errorf("oldest entries should be evicted: %s..%s", got[0].ProductID, got[2].ProductID)
	}
}

func TestInvalidCapClamped(t *testing.T) {
	m := NewShortTerm(0)
	if m.cap != DefaultCap {
		t.Errorf("expected default cap %d, got %d", DefaultCap, m.cap)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewShortTerm(10)
	m.Store("s1", record("prod_1"))
	m.Store("s2", record("prod_2"))

	if got := m.Retrieve("s1", 0); len(got) != 1 || got[0].ProductID != "prod_1" {
		t.Errorf("s1 polluted: %+v", got)
	}
	if got := m.Retrieve("unknown", 0); len(got) != 0 {
		t.Errorf("unknown session should be empty, got %d", len(got))
	}
	if m.SessionCount() != 2 {
		t.Errorf("expected 2 sessions, got %d", m.SessionCount())
	}
}

func TestClear(t *testing.T) {
	m := NewShortTerm(10)
	m.Store("s1", record("prod_1"))
	m.Clear("s1")
	if got := m.Retrieve("s1", 0); len(got) != 0 {
		t.Errorf("expected empty after clear, got %d", len(got))
	}
	// Clearing an unknown session is a no-op.
	m.Clear("never-seen")
}

func TestRecentProductIDs(t *testing.T) {
	m := NewShortTerm(10)
	m.Store("s1", record("prod_1", "prod_2", "prod_3"))
	m.Store("s1", record("prod_2", "prod_4"))

	seen := m.RecentProductIDs("s1", 5)
	for _, id := range []string{"prod_2", "prod_3", "prod_4"} {
		if _, ok := seen[id]; !ok {
			t.Errorf("expected %s in recent set", id)
		}
	}
	if _, ok := seen["prod_1"]; ok {
		t.Error("viewed product should not appear, only recommended ids")
	}
}

func TestRetrieveReturnsCopy(t *testing.T) {
	m := NewShortTerm(10)
	m.Store("s1", record("prod_1"))

	got := m.Retrieve("s1", 0)
	got[0].ProductID = "mutated"

	if again := m.Retrieve("s1", 0); again[0].ProductID != "prod_1" {
		t.Error("Retrieve leaked internal storage")
	}
}

func TestConcurrentSessions(t *testing.T) {
	m := NewShortTerm(50)

	var wg sync.WaitGroup
	for s := 0; s < 8; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", s)
			for i := 0; i < 100; i++ {
				m.Store(session, record(fmt.Sprintf("prod_%d", i)))
				m.Retrieve(session, 10)
			}
		}(s)
	}
	wg.Wait()

	for s := 0; s < 8; s++ {
		if got := m.Retrieve(fmt.Sprintf("s%d", s), 0); len(got) != 50 {
			t.Errorf("session s%d: expected 50 records, got %d", s, len(got))
		}
	}
}
