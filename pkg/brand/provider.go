package brand

import "github.com/haguremetal/hookgate/pkg/payload"

// Provider supplies the default sender identity stamped onto outgoing
// messages.
type Provider struct {
	username  string
	iconEmoji string
}

func New(username string, iconEmoji string) *Provider {
	p := Provider{
		username:  username,
		iconEmoji: iconEmoji,
	}

	return &p
}

// Apply fills in the identity fields the message leaves unset. Fields
// the caller already set are kept.
func (p *Provider) Apply(m *payload.Message) {
	if m.Username == "" {
		m.Username = p.username
	}

	if m.IconEmoji == "" && m.IconURL == "" {
		m.IconEmoji = p.iconEmoji
	}
}
