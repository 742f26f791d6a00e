package payload

// Message is the complete payload posted to an incoming webhook.
// Optional fields are omitted from the wire form when unset so the
// endpoint's own defaults apply.
type Message struct {
	Text        string        `json:"text,omitempty"`
	Channel     string        `json:"channel,omitempty"`
	Username    string        `json:"username,omitempty"`
	IconEmoji   string        `json:"icon_emoji,omitempty"`
	IconURL     string        `json:"icon_url,omitempty"`
	LinkNames   int           `json:"link_names,omitempty"`
	UnfurlLinks bool          `json:"unfurl_links,omitempty"`
	Attachments []*Attachment `json:"attachments,omitempty"`
}

func NewMessage(text string) *Message {
	m := Message{
		Text: text,
	}

	return &m
}

// Attach appends an attachment and returns the message for chaining.
func (m *Message) Attach(a *Attachment) *Message {
	m.Attachments = append(m.Attachments, a)
	return m
}
