package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/haguremetal/hookgate/pkg/brand"
	"github.com/haguremetal/hookgate/pkg/caching"
	"github.com/haguremetal/hookgate/pkg/endpoint"
	"github.com/haguremetal/hookgate/pkg/payload"
	"github.com/haguremetal/hookgate/pkg/rest"
)

var (
	ErrQueueFull = errors.New("delivery queue is full")

	// ErrDuplicate is the sentinel wrapped by DuplicateError.
	ErrDuplicate = errors.New("duplicate notification")
)

// DuplicateError reports a notification dropped because its dedupe key
// was already delivered within the TTL. Receipt is the record of that
// earlier delivery.
type DuplicateError struct {
	Receipt *caching.Receipt
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate notification: key %q was delivered as %s", e.Receipt.Key, e.Receipt.ID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

type Server struct {
	Endpoints *endpoint.Manager

	queue   *deliveryQueue
	pending *pendingTable
	cache   *caching.Cache
	brand   *brand.Provider
	api     *rest.RESTServer

	dedupeTTL      time.Duration
	collapseWindow time.Duration
	sendTimeout    time.Duration

	done    chan struct{}
	drained chan struct{}

	failures      int
	failuresMutex *sync.Mutex
}

type ServerOptions struct {
	APIPort   int
	QueueSize int

	Endpoints *endpoint.Manager
	Cache     *caching.Cache
	Brand     *brand.Provider

	// DedupeTTL is how long a delivered key suppresses repeats.
	DedupeTTL time.Duration

	// CollapseWindow is the quiet window for collapsed bursts.
	CollapseWindow time.Duration

	// SendTimeout bounds each webhook exchange.
	SendTimeout time.Duration
}

func NewServer(opts *ServerOptions) *Server {
	s := Server{
		Endpoints: opts.Endpoints,

		queue:   newDeliveryQueue(opts.QueueSize),
		pending: newPendingTable(),
		cache:   opts.Cache,
		brand:   opts.Brand,
		api:     rest.NewServer(&rest.RESTServerOptions{Port: opts.APIPort}),

		dedupeTTL:      opts.DedupeTTL,
		collapseWindow: opts.CollapseWindow,
		sendTimeout:    opts.SendTimeout,

		done:    make(chan struct{}),
		drained: make(chan struct{}),

		failuresMutex: &sync.Mutex{},
	}
	if s.sendTimeout == 0 {
		s.sendTimeout = 10 * time.Second
	}

	return &s
}

// Run starts the delivery worker and blocks serving the REST API.
func (s *Server) Run() error {
	s.routes()
	go s.deliver()

	return s.api.Run()
}

// Close stops the delivery worker, waits for it to finish the
// deliveries it already accepted, and shuts down the API server.
func (s *Server) Close() {
	close(s.done)
	<-s.drained

	if err := s.api.Shutdown(); err != nil {
		log.Println(err)
	}
}

// Submit validates a notification, builds its message and queues it for
// delivery. The returned delivery carries the ID later found on the
// cached receipt.
func (s *Server) Submit(n *Notification) (*Delivery, error) {
	ep, err := s.Endpoints.Get(n.Target)
	if err != nil {
		return nil, err
	}

	m, err := n.Message()
	if err != nil {
		return nil, err
	}

	s.brand.Apply(m)

	if err := payload.Validate(m); err != nil {
		return nil, err
	}

	if n.Key != "" && s.cache.Has(receiptKey(n.Key)) {
		receipt := caching.Receipt{}
		if err := s.cache.Get(receiptKey(n.Key), &receipt); err == nil {
			return nil, &DuplicateError{Receipt: &receipt}
		}
	}

	d := &Delivery{
		ID:       uuid.New().String(),
		Endpoint: ep,
		Message:  m,
		Key:      n.Key,
	}

	if n.Collapse && n.Key != "" {
		s.collapse(n.Key, d)
		return d, nil
	}

	if !s.queue.Push(d) {
		return nil, ErrQueueFull
	}

	return d, nil
}

// collapse parks the delivery behind its key's debounced trigger. Each
// new burst member replaces the previous one; the trigger enqueues
// whatever is latest once the quiet window passes.
func (s *Server) collapse(key string, d *Delivery) {
	s.pending.Store(key, d)

	trigger := s.pending.Debouncer(key, s.collapseWindow)
	trigger(func() {
		last := s.pending.Take(key)
		if last == nil {
			return
		}

		if !s.queue.Push(last) {
			log.Printf("Dropping collapsed delivery %s: %v", last.ID, ErrQueueFull)
			s.countFailure()
		}
	})
}

// deliver loops over the queue, posting deliveries until Close. An
// accepted delivery is never abandoned: whatever is still queued when
// the stop signal arrives is sent before the worker finishes.
func (s *Server) deliver() {
	defer close(s.drained)

	for {
		select {
		case <-s.done:
			s.drain()
			return
		case d := <-s.queue.C:
			s.send(d)
		}
	}
}

func (s *Server) drain() {
	for {
		select {
		case d := <-s.queue.C:
			s.send(d)
		default:
			return
		}
	}
}

func (s *Server) send(d *Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	if err := d.Endpoint.Send(d.Message, ctx); err != nil {
		log.Printf("Delivery %s to %s failed: %v", d.ID, d.Endpoint.GetName(), err)
		s.countFailure()
		return
	}

	if d.Key != "" {
		receipt := caching.NewReceipt(d.ID, d.Endpoint.GetName(), d.Key)
		if err := s.cache.Set(receiptKey(d.Key), receipt, s.dedupeTTL); err != nil {
			log.Println(err)
		}
	}
}

func (s *Server) countFailure() {
	s.failuresMutex.Lock()
	defer s.failuresMutex.Unlock()
	s.failures++
}

// Failures returns the number of deliveries that could not be made.
func (s *Server) Failures() int {
	s.failuresMutex.Lock()
	defer s.failuresMutex.Unlock()
	return s.failures
}

func receiptKey(key string) string {
	return "delivery:" + key
}

type notifyResponse struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

func (s *Server) routes() {
	s.api.Get("/api/health", func() (interface{}, error) {
		return map[string]interface{}{
			"status":   "ok",
			"failures": s.Failures(),
		}, nil
	})

	s.api.Get("/api/targets", func() (interface{}, error) {
		return s.Endpoints.Names(), nil
	})

	s.api.Post("/api/notify", s.handleNotify)
}

// handleNotify is the POST /api/notify handler. Validation failures map
// to 400 with the validation message in the body, an unknown target to
// 404, and a full queue to 503.
func (s *Server) handleNotify(body []byte) (interface{}, int, error) {
	n := Notification{}
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fiber.StatusBadRequest, err
	}

	d, err := s.Submit(&n)

	var dup *DuplicateError
	switch {
	case errors.As(err, &dup):
		return notifyResponse{ID: dup.Receipt.ID, Duplicate: true}, fiber.StatusOK, nil
	case errors.Is(err, endpoint.ErrUnknownEndpoint):
		return nil, fiber.StatusNotFound, err
	case errors.Is(err, ErrQueueFull):
		return nil, fiber.StatusServiceUnavailable, err
	case err != nil:
		return nil, fiber.StatusBadRequest, err
	}

	return notifyResponse{ID: d.ID}, fiber.StatusAccepted, nil
}
