package webhook

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/haguremetal/hookgate/pkg/payload"
)

// Client posts messages to a single webhook URL over HTTPS.
type Client struct {
	url  string
	http *fasthttp.Client
}

var _ Sender = (*Client)(nil)

type ClientOptions struct {
	URL string

	// HTTP overrides the transport; leave nil for the default client.
	HTTP *fasthttp.Client
}

func NewClient(opts *ClientOptions) *Client {
	c := Client{
		url:  opts.URL,
		http: opts.HTTP,
	}
	if c.http == nil {
		c.http = &fasthttp.Client{}
	}

	return &c
}

func (c *Client) Endpoint() string {
	return c.url
}

// Send encodes the message and posts it as JSON. The context deadline,
// when present, bounds the whole exchange.
func (c *Client) Send(m *payload.Message, ctx context.Context) error {
	body, err := payload.Encode(m)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		return err
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{Code: code, Body: string(resp.Body())}
	}

	return nil
}

// StatusError is returned when the endpoint answers with a non-2xx
// status. Body carries the endpoint's response text, which the API
// uses for hints like "invalid_payload".
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook endpoint returned status %d: %s", e.Code, e.Body)
}
