package caching

import (
	"encoding/json"
	"time"
)

// Receipt records an accepted delivery: which endpoint it went to and
// the dedupe key it was accepted under. Receipts are what the relay
// caches to suppress repeat deliveries of the same notification.
type Receipt struct {
	ID       string
	Endpoint string
	Key      string
	SentAt   time.Time
}

func NewReceipt(id string, endpoint string, key string) *Receipt {
	return &Receipt{
		ID:       id,
		Endpoint: endpoint,
		Key:      key,
		SentAt:   time.Now(),
	}
}

func (r *Receipt) SerializeSelf() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Receipt) DeserializeSelf(data []byte) error {
	return json.Unmarshal(data, r)
}
