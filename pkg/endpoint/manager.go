package endpoint

import (
	"errors"
	"sort"
)

var (
	ErrUnknownEndpoint   = errors.New("endpoint is not registered")
	ErrTooManyEndpoints  = errors.New("maximum endpoint count reached")
	ErrDuplicateEndpoint = errors.New("endpoint is already registered")
)

// Manager is the registry of configured endpoints. Registration happens
// once at startup; lookups afterwards are read-only.
type Manager struct {
	numEndpoints int
	maxEndpoints int
	endpoints    map[string]*Endpoint
}

func NewManager(maxEndpoints int) *Manager {
	m := Manager{
		numEndpoints: 0,
		maxEndpoints: maxEndpoints,
		endpoints:    make(map[string]*Endpoint),
	}

	return &m
}

func (m *Manager) Register(e *Endpoint) error {
	if m.numEndpoints >= m.maxEndpoints {
		return ErrTooManyEndpoints
	}

	if _, ok := m.endpoints[e.GetName()]; ok {
		return ErrDuplicateEndpoint
	}

	m.endpoints[e.GetName()] = e
	m.numEndpoints++

	return nil
}

func (m *Manager) Get(name string) (*Endpoint, error) {
	if e, ok := m.endpoints[name]; ok {
		return e, nil
	}

	return nil, ErrUnknownEndpoint
}

// Names returns the registered endpoint names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.endpoints))
	for name := range m.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
