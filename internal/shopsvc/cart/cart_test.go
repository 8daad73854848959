package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func item(id string, price float64) Item {
	return Item{CardID: id, Name: "card " + id, Price: decimal.NewFromFloat(price)}
}

func TestTotalIsDerivedFromItems(t *testing.T) {
	c := &Cart{Items: []Item{item("a", 10.50), item("b", 2.25), item("a", 10.50)}}

	want := decimal.NewFromFloat(23.25)
	if !c.Total().Equal(want) {
		t.Errorf("expected total %s, got %s", want, c.Total())
	}
	if c.Count() != 3 {
		t.Errorf("expected count 3, got %d", c.Count())
	}
}

func TestEmptyCartTotalsZero(t *testing.T) {
	s := NewStore()

	c := s.Get("session-1")
	if !c.Total().Equal(decimal.Zero) {
		t.Errorf("expected zero total, got %s", c.Total())
	}
	if c.Count() != 0 {
		t.Errorf("expected empty cart, got %d items", c.Count())
	}
}

func TestAddAndRemoveItems(t *testing.T) {
	s := NewStore()

	s.AddItem("session-1", item("a", 10))
	c := s.AddItem("session-1", item("a", 10))
	if c.Count() != 2 {
		t.Fatalf("expected two independent units, got %d", c.Count())
	}

	c, removed := s.RemoveItem("session-1", "a")
	if !removed {
		t.Fatal("expected a unit to be removed")
	}
	if c.Count() != 1 {
		t.Errorf("expected one unit left, got %d", c.Count())
	}

	if _, removed := s.RemoveItem("session-1", "unknown"); removed {
		t.Error("removing an absent card must report false")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()

	s.AddItem("session-1", item("a", 10))
	s.AddItem("session-2", item("b", 20))

	if got := s.Get("session-1").Count(); got != 1 {
		t.Errorf("expected 1 item in session-1, got %d", got)
	}

	s.Clear("session-1")
	if got := s.Get("session-1").Count(); got != 0 {
		t.Errorf("expected cleared cart, got %d items", got)
	}
	if got := s.Get("session-2").Count(); got != 1 {
		t.Errorf("clearing session-1 must not touch session-2, got %d items", got)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem("session-1", item("a", 10))

	c := s.Get("session-1")
	c.Items[0].CardID = "mutated"

	if got := s.Get("session-1").Items[0].CardID; got != "a" {
		t.Errorf("store must not observe snapshot mutation, got %s", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem("session-1", item("a", 1))
			s.Get("session-1")
		}()
	}
	wg.Wait()

	if got := s.Get("session-1").Count(); got != 50 {
		t.Errorf("expected 50 items, got %d", got)
	}
}
