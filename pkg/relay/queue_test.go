package relay

import (
	"sync"
	"testing"
)

func TestQueuePushPop(t *testing.T) {
	q := newDeliveryQueue(2)

	first := &Delivery{ID: "a"}
	second := &Delivery{ID: "b"}

	if !q.Push(first) || !q.Push(second) {
		t.Fatal("push failed below capacity")
	}
	if q.Push(&Delivery{ID: "c"}) {
		t.Error("push succeeded beyond capacity")
	}

	if d := q.Pop(); d != first {
		t.Errorf("popped %v, expected the first delivery", d)
	}
	if d := q.Pop(); d != second {
		t.Errorf("popped %v, expected the second delivery", d)
	}

	// A slot opened up again.
	if !q.Push(&Delivery{ID: "c"}) {
		t.Error("push failed after draining")
	}
}

func TestQueuePushConcurrent(t *testing.T) {
	q := newDeliveryQueue(1)

	results := make(chan bool, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- q.Push(&Delivery{})
		}()
	}
	wg.Wait()
	close(results)

	// Every push returned instead of blocking, and only one slot
	// was handed out.
	accepted := 0
	for ok := range results {
		if ok {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("accepted %d pushes into a single-slot queue", accepted)
	}
}
