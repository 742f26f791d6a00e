package endpoint

import (
	"context"

	"github.com/haguremetal/hookgate/pkg/payload"
	"github.com/haguremetal/hookgate/pkg/webhook"
)

// Endpoint is a named webhook destination loaded from configuration.
type Endpoint struct {
	Sender webhook.Sender

	name    string
	channel string
}

type EndpointOptions struct {
	Name string
	URL  string

	// Channel is posted to when the message does not name one itself.
	Channel string

	// Sender overrides the webhook client; leave nil for the default.
	Sender webhook.Sender
}

func New(opts *EndpointOptions) *Endpoint {
	e := Endpoint{
		Sender: opts.Sender,

		name:    opts.Name,
		channel: opts.Channel,
	}
	if e.Sender == nil {
		e.Sender = webhook.NewClient(&webhook.ClientOptions{URL: opts.URL})
	}

	return &e
}

func (e *Endpoint) GetName() string {
	return e.name
}

func (e *Endpoint) GetChannel() string {
	return e.channel
}

// Send delivers the message to this endpoint, filling in the endpoint's
// default channel when the message leaves it unset. A timeout context
// should always be provided in order to avoid hanging.
func (e *Endpoint) Send(m *payload.Message, ctx context.Context) error {
	if m.Channel == "" {
		m.Channel = e.channel
	}

	return e.Sender.Send(m, ctx)
}
