package webhook

import (
	"context"

	"github.com/haguremetal/hookgate/pkg/payload"
)

// Sender delivers a message to a webhook endpoint.
type Sender interface {
	// Endpoint returns the destination this sender posts to.
	Endpoint() string

	// Send delivers the message. A timeout context should always be
	// provided in order to avoid hanging on an unresponsive endpoint.
	Send(m *payload.Message, ctx context.Context) error
}
