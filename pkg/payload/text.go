package payload

// Escape replaces the three characters the API reserves for its own
// markup in message text. Full HTML escaping is wrong here; the API
// only treats &, < and > specially.
func Escape(text string) string {
	escaped := make([]byte, 0, len(text))
	for _, c := range text {
		switch c {
		case '&':
			escaped = append(escaped, "&amp;"...)
		case '<':
			escaped = append(escaped, "&lt;"...)
		case '>':
			escaped = append(escaped, "&gt;"...)
		default:
			escaped = append(escaped, string(c)...)
		}
	}
	return string(escaped)
}

// Link is the <url|label> markup form for hyperlinks in message text.
type Link struct {
	URL   string
	Label string
}

func (l Link) String() string {
	if l.Label == "" {
		return "<" + l.URL + ">"
	}
	return "<" + l.URL + "|" + Escape(l.Label) + ">"
}

// TextBuilder assembles message text from plain segments and links,
// escaping each piece as it is appended.
type TextBuilder struct {
	buffer []byte
}

func NewText() *TextBuilder {
	return &TextBuilder{}
}

func (b *TextBuilder) AppendText(text string) *TextBuilder {
	b.buffer = append(b.buffer, []byte(Escape(text))...)
	return b
}

func (b *TextBuilder) AppendLink(l Link) *TextBuilder {
	b.buffer = append(b.buffer, []byte(l.String())...)
	return b
}

func (b *TextBuilder) Build() string {
	return string(b.buffer)
}
