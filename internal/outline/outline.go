// Package outline builds a hierarchical view of the elements in an HTML
// document. The result mirrors nesting but keeps none of the text content;
// it is meant for display, not for round-tripping the document.
package outline

import (
	"htmlscope/internal/scanner"
)

// Element represents one opening tag and its subtree. Each element
// exclusively owns its children; the structure is always a tree.
type Element struct {
	Tag string

	// ID is taken from the id attribute, "" if absent.
	ID string

	// Classes holds the names from the class attribute in declaration
	// order. The first one is the primary display class.
	Classes []string

	// Start is the offset of the opening < in the source text.
	Start int

	// SelfClosing is true for /> syntax and for void elements.
	SelfClosing bool

	Children []*Element
}

// HasChildren reports whether a view should treat the element as expandable.
// An open element with no parsed children still counts: it could legally
// contain some.
func (e *Element) HasChildren() bool {
	return len(e.Children) > 0 || !e.SelfClosing
}

// Build scans the whole document and returns its root elements in document
// order. Malformed markup never fails the scan: an unmatched closing tag is
// ignored, and elements left unterminated at the end of the document become
// childless leaves.
func Build(text string) []*Element {
	var roots []*Element
	var stack []*Element

	for offset := 0; ; {
		tok, ok := scanner.Next(text, offset)
		if !ok {
			break
		}
		offset = tok.End

		if tok.Closing {
			if len(stack) > 0 && stack[len(stack)-1].Tag == tok.Name {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		el := &Element{
			Tag:         tok.Name,
			ID:          tok.ID(),
			Classes:     tok.Classes(),
			Start:       tok.Start,
			SelfClosing: tok.SelfClosing,
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, el)
		} else {
			roots = append(roots, el)
		}

		if !tok.SelfClosing {
			stack = append(stack, el)
		}
	}

	return roots
}
