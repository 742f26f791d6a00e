package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/haguremetal/hookgate/pkg/color"
	"github.com/haguremetal/hookgate/pkg/payload"
)

type recordedRequest struct {
	method      string
	contentType string
	body        []byte
}

// startWebhook runs a webhook endpoint on an in-memory listener and
// returns a client wired to it.
func startWebhook(t *testing.T, status int) (*Client, <-chan recordedRequest) {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { ln.Close() })

	requests := make(chan recordedRequest, 1)
	go fasthttp.Serve(ln, func(ctx *fasthttp.RequestCtx) {
		requests <- recordedRequest{
			method:      string(ctx.Method()),
			contentType: string(ctx.Request.Header.ContentType()),
			body:        append([]byte(nil), ctx.PostBody()...),
		}
		ctx.SetStatusCode(status)
		if status >= 400 {
			ctx.SetBodyString("invalid_payload")
		}
	})

	client := NewClient(&ClientOptions{
		URL: "http://hooks.test/services/T000/B000/XXXX",
		HTTP: &fasthttp.Client{
			Dial: func(addr string) (net.Conn, error) {
				return ln.Dial()
			},
		},
	})

	return client, requests
}

func TestClientSend(t *testing.T) {
	client, requests := startWebhook(t, fasthttp.StatusOK)

	m := payload.NewMessage("pipeline green").Attach(
		payload.NewAttachment("pipeline green").WithColor(color.Good.Color()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Send(m, ctx); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	req := <-requests
	if req.method != "POST" {
		t.Errorf("method = %q, expected POST", req.method)
	}
	if req.contentType != "application/json" {
		t.Errorf("content type = %q, expected application/json", req.contentType)
	}

	decoded := payload.Message{}
	if err := json.Unmarshal(req.body, &decoded); err != nil {
		t.Fatalf("posted body is not valid JSON: %v", err)
	}
	if decoded.Text != "pipeline green" {
		t.Errorf("posted text = %q", decoded.Text)
	}
	if len(decoded.Attachments) != 1 {
		t.Fatalf("posted %d attachments, expected 1", len(decoded.Attachments))
	}
}

func TestClientSendRawColorField(t *testing.T) {
	client, requests := startWebhook(t, fasthttp.StatusOK)

	m := payload.NewMessage("").Attach(
		payload.NewAttachment("alert").WithColor(color.MustParse("#b13d41")),
	)

	if err := client.Send(m, context.Background()); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	req := <-requests
	raw := struct {
		Attachments []struct {
			Color string `json:"color"`
		} `json:"attachments"`
	}{}
	if err := json.Unmarshal(req.body, &raw); err != nil {
		t.Fatal(err)
	}
	if raw.Attachments[0].Color != "#b13d41" {
		t.Errorf("color field = %q, expected #b13d41", raw.Attachments[0].Color)
	}
}

func TestClientSendStatusError(t *testing.T) {
	client, requests := startWebhook(t, fasthttp.StatusNotFound)

	err := client.Send(payload.NewMessage("hi"), context.Background())
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.Code != fasthttp.StatusNotFound {
		t.Errorf("Code = %d, expected 404", statusErr.Code)
	}
	if statusErr.Body != "invalid_payload" {
		t.Errorf("Body = %q, expected invalid_payload", statusErr.Body)
	}

	<-requests
}

func TestClientSendInvalidMessage(t *testing.T) {
	client, requests := startWebhook(t, fasthttp.StatusOK)

	err := client.Send(payload.NewMessage(""), context.Background())
	if !errors.Is(err, payload.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}

	// Nothing should have reached the endpoint.
	select {
	case <-requests:
		t.Error("invalid message was posted anyway")
	default:
	}
}
