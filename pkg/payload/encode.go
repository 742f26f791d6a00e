package payload

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoContent  = errors.New("message has no text and no attachments")
	ErrNoFallback = errors.New("attachment requires a fallback")
	ErrNoTitle    = errors.New("field requires a title")
)

// Validate checks that a message can be accepted by the API: it must
// carry text or at least one attachment, every attachment needs its
// fallback, and every field its title.
func Validate(m *Message) error {
	if m.Text == "" && len(m.Attachments) == 0 {
		return ErrNoContent
	}

	for _, a := range m.Attachments {
		if a.Fallback == "" {
			return ErrNoFallback
		}
		for _, f := range a.Fields {
			if f.Title == "" {
				return ErrNoTitle
			}
		}
	}

	return nil
}

// Encode validates m and returns its JSON wire form, ready to post.
func Encode(m *Message) ([]byte, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	return json.Marshal(m)
}
