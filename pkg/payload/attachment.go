package payload

import "github.com/haguremetal/hookgate/pkg/color"

// Attachment is a richly formatted section of a message. Fallback is
// the plain-text summary shown by clients that cannot render
// attachments, and is required by the API.
type Attachment struct {
	Fallback string       `json:"fallback"`
	Text     string       `json:"text,omitempty"`
	Pretext  string       `json:"pretext,omitempty"`
	Color    *color.Color `json:"color,omitempty"`
	Fields   []*Field     `json:"fields,omitempty"`
}

// Field is a short title/value pair rendered in a table inside an
// attachment. Short fields may share a row with another short field.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value,omitempty"`
	Short bool   `json:"short,omitempty"`
}

func NewAttachment(fallback string) *Attachment {
	a := Attachment{
		Fallback: fallback,
	}

	return &a
}

// WithColor sets the attachment color and returns the attachment for
// chaining.
func (a *Attachment) WithColor(c color.Color) *Attachment {
	a.Color = &c
	return a
}

// AddField appends a field and returns the attachment for chaining.
func (a *Attachment) AddField(f *Field) *Attachment {
	a.Fields = append(a.Fields, f)
	return a
}
