package locator

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"htmlscope/internal/outline"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	t.Helper()

	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func mustLocate(t *testing.T, text string, offset int) Range {
	t.Helper()

	r, err := Locate(text, offset)
	if err != nil {
		t.Fatalf("failed to locate element at offset %d: %s", offset, err)
	}

	if r.Start < 0 || r.Start >= r.End || r.End > len(text) {
		t.Fatalf("invalid range %d:%d for text of length %d", r.Start, r.End, len(text))
	}

	return r
}

func TestLocateSelfClosing(t *testing.T) {
	text := `<img id="a" />`

	for offset := 0; offset <= len(text); offset++ {
		r := mustLocate(t, text, offset)

		assert(t, Range{Start: 0, End: len(text)}, r, "range")
	}
}

func TestLocateVoidElement(t *testing.T) {
	text := `<p><br></p>`

	r := mustLocate(t, text, 5)

	assert(t, Range{Start: 3, End: 7}, r, "range of the br tag")
	assert(t, "<br>", text[r.Start:r.End], "located text")
}

func TestLocateNestedSameName(t *testing.T) {
	text := `<div id="outer"><div id="inner">x</div></div>`

	// Inside the inner div's text content: the innermost element wins.
	inner := mustLocate(t, text, strings.IndexByte(text, 'x'))
	assert(t, `<div id="inner">x</div>`, text[inner.Start:inner.End], "inner range")

	// Immediately after the outer opening tag: the whole outer element,
	// children included.
	outer := mustLocate(t, text, len(`<div id="outer">`))
	assert(t, Range{Start: 0, End: len(text)}, outer, "outer range")
}

func TestLocateDeepSameNameNesting(t *testing.T) {
	text := `<div>a<div>b<div>c</div>d</div>e</div>`

	// The cursor is in the middle div's content; its range must cover the
	// innermost div but stop at its own closer, not the outermost one.
	r := mustLocate(t, text, strings.IndexByte(text, 'b'))

	assert(t, `<div>b<div>c</div>d</div>`, text[r.Start:r.End], "middle range")
}

func TestLocateIgnoresOtherTagBalance(t *testing.T) {
	// The span's balance is irrelevant to matching the div's closer.
	text := `<div><span>x</span><span>y</span></div>`

	r := mustLocate(t, text, 5)

	assert(t, Range{Start: 0, End: len(text)}, r, "div range")
}

func TestLocateInsideOpeningTag(t *testing.T) {
	text := `<section id="s"><p>x</p></section>`

	r := mustLocate(t, text, 9)

	assert(t, Range{Start: 0, End: len(text)}, r, "section range")
}

func TestLocateDoesNotCrossClosingTag(t *testing.T) {
	text := `<div>a</div> <p>x</p>`

	// The cursor sits in the whitespace after </div>: the backward search
	// stops at the closing tag and the forward search picks the p.
	r := mustLocate(t, text, len(`<div>a</div>`))

	assert(t, "<p>x</p>", text[r.Start:r.End], "located text")
}

func TestLocateNotFound(t *testing.T) {
	type testCase struct {
		name   string
		text   string
		offset int
	}

	cases := []testCase{
		{
			name:   "element only inside a comment",
			text:   `<!-- <div id="x"></div> -->`,
			offset: 8,
		},
		{
			name:   "unterminated element",
			text:   `<div id="x">`,
			offset: 3,
		},
		{
			name:   "no tags at all",
			text:   `plain text`,
			offset: 4,
		},
		{
			name:   "empty document",
			text:   ``,
			offset: 0,
		},
		{
			name:   "cursor inside a closing tag with nothing after",
			text:   `<div>abc</div>`,
			offset: 11,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			_, err := Locate(c.text, c.offset)

			if !goerrors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestNotFoundErrorLocation(t *testing.T) {
	text := "first line\nsecond line\nthird line"

	_, err := Locate(text, strings.Index(text, "second"))

	var poserr *NotFoundError
	if !goerrors.As(err, &poserr) {
		t.Fatalf("expected a NotFoundError, got %v", err)
	}

	assert(t, 1, poserr.At().Line, "failure line")
}

func TestLocateOffsetClamping(t *testing.T) {
	text := `<img>`

	assert(t, Range{Start: 0, End: 5}, mustLocate(t, text, -10), "negative offset")
	assert(t, Range{Start: 0, End: 5}, mustLocate(t, text, 1000), "offset past the end")
}

func TestDeleteThenRebuild(t *testing.T) {
	text := `<ul><li id="a">x</li><li id="b">y</li><li id="c">z</li></ul>`

	r := mustLocate(t, text, strings.IndexByte(text, 'y'))
	assert(t, `<li id="b">y</li>`, text[r.Start:r.End], "located text")

	edited := text[:r.Start] + text[r.End:]

	got := outline.Build(edited)
	want := outline.Build(`<ul><li id="a">x</li><li id="c">z</li></ul>`)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rebuilt forest mismatch (-want +got):\n%s", diff)
	}
}
