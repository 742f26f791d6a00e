package color

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Color is a validated attachment color. It holds either one of the
// keywords the messaging API understands on its own ("good", "warning",
// "danger") or a "#"-prefixed six-digit hex code such as "#b13d41".
// Values are immutable once constructed; obtain one through Parse,
// MustParse or a Builtin. The zero value is the empty color, which the
// constructors never produce.
type Color struct {
	value string
}

// Builtin enumerates the default colors built into the messaging API.
type Builtin byte

const (
	Good    Builtin = iota // green
	Warning                // orange
	Danger                 // red
)

var keywords = map[string]Builtin{
	"good":    Good,
	"warning": Warning,
	"danger":  Danger,
}

func (b Builtin) String() string {
	switch b {
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "good"
	}
}

// Color returns the builtin as a Color. The conversion never fails.
func (b Builtin) Color() Color {
	return Color{value: b.String()}
}

// Parse validates s as an attachment color. Keywords are matched
// case-sensitively and stored as-is; any other input must be a "#"
// followed by six hex digits, and is stored verbatim with its letter
// case preserved. The length check counts characters, not bytes, so
// multi-byte input is measured the way a user would count it.
func Parse(s string) (Color, error) {
	if _, ok := keywords[s]; ok {
		return Color{value: s}, nil
	}

	if utf8.RuneCountInString(s) != 7 {
		return Color{}, ErrWrongLength
	}

	if !strings.HasPrefix(s, "#") {
		return Color{}, ErrMissingHash
	}

	if _, err := hex.DecodeString(s[1:]); err != nil {
		var bad hex.InvalidByteError
		if errors.As(err, &bad) {
			return Color{}, &InvalidHexError{
				Char: byte(bad),
				Pos:  strings.IndexByte(s[1:], byte(bad)),
			}
		}
		return Color{}, err
	}

	return Color{value: s}, nil
}

// MustParse is Parse for trusted literals; it panics on invalid input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("invalid color %q: %v", s, err))
	}
	return c
}

// String returns the stored text. This is the diagnostic form; the
// wire form is produced by MarshalJSON.
func (c Color) String() string {
	return c.value
}

// MarshalJSON encodes the color as a bare JSON string, the
// representation the API expects in "color" fields.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}
