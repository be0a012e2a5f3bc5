// Package render writes an element outline as indented text, one line per
// element.
package render

import (
	"fmt"
	"io"
	"strings"

	"htmlscope/internal/outline"
)

type Options struct {
	// Indent is the string prepended once per nesting level. Defaults to
	// two spaces.
	Indent string

	// ShowOffsets appends each element's start offset to its line.
	ShowOffsets bool
}

// Visit walks the forest depth-first and writes one line per element to w.
func Visit(w io.Writer, roots []*outline.Element, opts Options) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	ow := &outlineWriter{
		w:    w,
		opts: opts,
	}

	for _, el := range roots {
		ow.writeElement(el, 0)
	}

	return ow.err
}

// Label returns the display name of an element: the tag name, the id if one
// is set, and the primary (first) class.
func Label(el *outline.Element) string {
	var sb strings.Builder

	sb.WriteString(el.Tag)

	if el.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(el.ID)
	}

	if len(el.Classes) > 0 {
		sb.WriteByte('.')
		sb.WriteString(el.Classes[0])
	}

	return sb.String()
}

type outlineWriter struct {
	w    io.Writer
	opts Options
	err  error
}

func (w *outlineWriter) writeElement(el *outline.Element, depth int) {
	line := Label(el)
	if w.opts.ShowOffsets {
		line = fmt.Sprintf("%s @%d", line, el.Start)
	}

	w.writeLine(depth, line)

	for _, child := range el.Children {
		w.writeElement(child, depth+1)
	}
}

func (w *outlineWriter) writeLine(depth int, line string) {
	if w.err != nil {
		return
	}

	_, w.err = fmt.Fprintf(w.w, "%s%s\n", strings.Repeat(w.opts.Indent, depth), line)
}
