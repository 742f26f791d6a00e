package relay

import (
	"testing"
	"time"
)

func TestPendingTakeLatest(t *testing.T) {
	p := newPendingTable()

	p.Store("burst", &Delivery{ID: "a"})
	p.Store("burst", &Delivery{ID: "b"})

	d := p.Take("burst")
	if d == nil || d.ID != "b" {
		t.Fatalf("Take returned %v, expected the latest member", d)
	}

	if d := p.Take("burst"); d != nil {
		t.Errorf("second Take returned %v, expected nil", d)
	}
}

func TestPendingTakeReleasesKey(t *testing.T) {
	p := newPendingTable()

	p.Store("burst", &Delivery{ID: "a"})
	p.Debouncer("burst", time.Millisecond)
	p.Take("burst")

	p.lock.Lock()
	defer p.lock.Unlock()
	if len(p.latest) != 0 {
		t.Errorf("%d entries left after Take", len(p.latest))
	}
	if len(p.debouncers) != 0 {
		t.Errorf("%d debouncers left after Take", len(p.debouncers))
	}
}
