package webhook

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/haguremetal/hookgate/pkg/payload"
)

// Broadcast fans a message out to every registered sender.
type Broadcast struct {
	senders    []Sender
	numSenders int
	maxSenders int
	mu         sync.Mutex
}

var _ Sender = (*Broadcast)(nil)

func NewBroadcast(size int) *Broadcast {
	b := &Broadcast{
		senders:    make([]Sender, size),
		numSenders: 0,
		maxSenders: size,
	}
	return b
}

func (b *Broadcast) Endpoint() string {
	return ""
}

// Send delivers the message to all senders concurrently. It waits for
// every delivery to finish and returns the first error encountered.
func (b *Broadcast) Send(m *payload.Message, ctx context.Context) error {
	b.mu.Lock()
	senders := make([]Sender, b.numSenders)
	copy(senders, b.senders[:b.numSenders])
	b.mu.Unlock()

	var eg errgroup.Group
	for _, s := range senders {
		s := s
		eg.Go(func() error {
			return s.Send(m, ctx)
		})
	}

	return eg.Wait()
}

// Set registers a sender, failing when the broadcast set is full.
func (b *Broadcast) Set(s Sender) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.numSenders >= b.maxSenders {
		return errors.New("maximum sender count reached")
	}

	b.senders[b.numSenders] = s
	b.numSenders++

	return nil
}

// Unset removes the sender posting to the same endpoint, keeping the
// remaining senders packed.
func (b *Broadcast) Unset(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()

	senderIdx := -1
	for i := 0; i < b.numSenders; i++ {
		if b.senders[i].Endpoint() == s.Endpoint() {
			senderIdx = i
		}
	}

	if senderIdx == -1 {
		return
	}

	b.senders[senderIdx] = b.senders[b.numSenders-1]
	b.senders[b.numSenders-1] = nil
	b.numSenders--
}
