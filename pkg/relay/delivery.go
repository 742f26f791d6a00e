package relay

import (
	"github.com/haguremetal/hookgate/pkg/endpoint"
	"github.com/haguremetal/hookgate/pkg/payload"
)

// Delivery is one accepted notification on its way to an endpoint.
type Delivery struct {
	ID       string
	Endpoint *endpoint.Endpoint
	Message  *payload.Message
	Key      string
}
