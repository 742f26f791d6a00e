package relay

import (
	"github.com/haguremetal/hookgate/pkg/color"
	"github.com/haguremetal/hookgate/pkg/payload"
)

// Notification is one inbound delivery request as accepted over the
// API. Target names a configured endpoint; Color, when present, must
// satisfy color.Parse and its error surfaces to the caller verbatim.
type Notification struct {
	Target  string `json:"target"`
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
	Title   string `json:"title,omitempty"`
	Color   string `json:"color,omitempty"`

	// Key identifies the notification for dedupe purposes. Repeat
	// submissions under the same key within the dedupe TTL are dropped.
	Key string `json:"key,omitempty"`

	// Collapse debounces bursts sharing a key: only the last burst
	// member is delivered once the quiet window passes.
	Collapse bool `json:"collapse,omitempty"`
}

// Message builds the webhook payload for the notification. Text and
// title go through the API's markup escaping; a title or color promotes
// the text into an attachment.
func (n *Notification) Message() (*payload.Message, error) {
	text := payload.Escape(n.Text)

	m := payload.NewMessage(text)
	m.Channel = n.Channel

	if n.Title == "" && n.Color == "" {
		return m, nil
	}

	fallback := n.Title
	if fallback == "" {
		fallback = n.Text
	}

	a := payload.NewAttachment(fallback)
	a.Text = text
	a.Pretext = payload.Escape(n.Title)

	if n.Color != "" {
		c, err := color.Parse(n.Color)
		if err != nil {
			return nil, err
		}
		a.WithColor(c)
	}

	m.Text = ""
	m.Attach(a)

	return m, nil
}
