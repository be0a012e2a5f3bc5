package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

// Token is the result of matching one <...> construct. Tokens are produced
// lazily while scanning and are not retained once the scan that needed them
// completes.
type Token struct {
	// Name is the tag name, lower-cased.
	Name string

	// Closing is true for </name ...> tags.
	Closing bool

	// SelfClosing is true for tags written with the /> syntax and for tags
	// whose name is a void element.
	SelfClosing bool

	// AttrsRaw is the raw text between the tag name and the closing >.
	AttrsRaw string

	// Start is the offset of the opening <, End is one past the closing >.
	Start, End int
}

var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// IsVoid reports whether name is a void element, one that never carries a
// closing tag or children.
func IsVoid(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

// Only quoted values are recognized; unquoted attributes yield no value.
var (
	idAttrPattern    = regexp.MustCompile(`(?i)(?:^|\s)id\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	classAttrPattern = regexp.MustCompile(`(?i)(?:^|\s)class\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

func attrValue(raw string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	// The two groups are exclusive alternatives; the unmatched one is empty.
	return m[1] + m[2], true
}

// ID returns the value of the tag's id attribute, or "" if absent.
func (t Token) ID() string {
	v, _ := attrValue(t.AttrsRaw, idAttrPattern)
	return v
}

// Classes returns the class names declared on the tag, in order.
func (t Token) Classes() []string {
	v, ok := attrValue(t.AttrsRaw, classAttrPattern)
	if !ok {
		return nil
	}

	names := strings.Fields(v)
	if len(names) == 0 {
		return nil
	}
	return names
}

type Location struct {
	// 0-based
	Line, Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column+1)
}

// LocationAt converts a byte offset into text to a line and column. Offsets
// out of range are clamped.
func LocationAt(text string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	var loc Location
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			loc.Line++
			loc.Column = 0
		} else {
			loc.Column++
		}
	}

	return loc
}
