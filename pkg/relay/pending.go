package relay

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// pendingTable tracks deliveries being collapsed. Each dedupe key holds
// the latest burst member and a debounced trigger; when the trigger
// finally fires, only the latest member is still here to be taken.
type pendingTable struct {
	latest     map[string]*Delivery
	debouncers map[string]func(f func())
	lock       *sync.Mutex
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		latest:     make(map[string]*Delivery),
		debouncers: make(map[string]func(f func())),
		lock:       &sync.Mutex{},
	}
}

// Store records d as the latest burst member for its key.
func (p *pendingTable) Store(key string, d *Delivery) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.latest[key] = d
}

// Debouncer returns the debounced trigger for the provided key,
// creating it with the provided quiet window on first use.
func (p *pendingTable) Debouncer(key string, window time.Duration) func(f func()) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if trigger, ok := p.debouncers[key]; ok {
		return trigger
	}

	trigger := debounce.New(window)
	p.debouncers[key] = trigger

	return trigger
}

// Take removes and returns the latest burst member for the provided
// key, or nil if nothing is pending under it. The key's debouncer goes
// with it, so the table does not grow with every key ever seen; the
// next burst under the same key starts a fresh one.
func (p *pendingTable) Take(key string) *Delivery {
	p.lock.Lock()
	defer p.lock.Unlock()

	d, ok := p.latest[key]
	if !ok {
		return nil
	}
	delete(p.latest, key)
	delete(p.debouncers, key)

	return d
}
