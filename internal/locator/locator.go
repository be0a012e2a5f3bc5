// Package locator finds the exact character range of the complete element
// under a cursor offset, so callers can remove the element and all of its
// descendants in one text edit.
package locator

import (
	"errors"
	"fmt"

	"htmlscope/internal/scanner"
)

// ErrNotFound is wrapped by every failed location. Malformed or ambiguous
// markup never yields a partial range, only this.
var ErrNotFound = errors.New("no element found")

// NotFoundError carries the position where the search gave up.
type NotFoundError struct {
	Location scanner.Location
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element found at %s", &e.Location)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func (e *NotFoundError) At() scanner.Location {
	return e.Location
}

// Range is a pair of exclusive character offsets covering one complete
// element, opening tag through matching closing tag.
type Range struct {
	Start, End int
}

// Locate returns the range of the smallest well-formed element enclosing or
// adjacent to offset.
//
// The anchor opening tag is the nearest one at or before offset, unless a
// closing tag sits between it and the cursor: a closing tag stops the
// backward search, and the nearest opening tag after the cursor is used
// instead. This deliberately bounds the search to the innermost plausible
// element; a cursor sitting between siblings will not reach an outer
// ancestor.
func Locate(text string, offset int) (Range, error) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	anchor, ok := findAnchor(text, offset)
	if !ok {
		return Range{}, &NotFoundError{Location: scanner.LocationAt(text, offset)}
	}

	if anchor.SelfClosing {
		return Range{Start: anchor.Start, End: anchor.End}, nil
	}

	// Walk forward keeping a depth counter so that same-name nesting
	// (a div inside a div) matches the correct closing tag. Other tag
	// names never affect the count.
	depth := 1

	for pos := anchor.End; ; {
		tok, ok := scanner.Next(text, pos)
		if !ok {
			return Range{}, &NotFoundError{Location: scanner.LocationAt(text, anchor.Start)}
		}
		pos = tok.End

		if tok.Name != anchor.Name {
			continue
		}

		if tok.Closing {
			depth--
			if depth == 0 {
				return Range{Start: anchor.Start, End: tok.End}, nil
			}
		} else if !tok.SelfClosing {
			depth++
		}
	}
}

// findAnchor picks the opening tag the range is computed from. Scanning the
// token stream from the start of the document keeps commented-out tags from
// ever becoming anchors.
func findAnchor(text string, offset int) (scanner.Token, bool) {
	var before scanner.Token
	haveBefore := false

	for pos := 0; ; {
		tok, ok := scanner.Next(text, pos)
		if !ok {
			break
		}
		pos = tok.End

		if tok.Start < offset {
			// The last token starting before the cursor is the
			// first one a backward character scan would hit. A tag
			// starting exactly at the cursor is ahead of it.
			before = tok
			haveBefore = true
			continue
		}

		if haveBefore && !before.Closing {
			break
		}

		// Nothing usable behind the cursor: fall back to the nearest
		// opening tag ahead of it.
		if !tok.Closing {
			return tok, true
		}
	}

	if haveBefore && !before.Closing {
		return before, true
	}

	return scanner.Token{}, false
}
