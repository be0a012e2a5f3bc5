package scanner

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	doctypeOpen  = "<!doctype"
)

// Next returns the first tag token at or after from, skipping HTML comments
// and the DOCTYPE declaration. A < that does not begin a valid tag is treated
// as plain text; malformed input never produces an error, only the absence of
// further tokens.
func Next(text string, from int) (tok Token, ok bool) {
	i := from
	if i < 0 {
		i = 0
	}

	for i < len(text) {
		if text[i] != '<' {
			i++
			continue
		}

		if strings.HasPrefix(text[i:], commentOpen) {
			end := strings.Index(text[i+len(commentOpen):], commentClose)
			if end < 0 {
				// Unterminated comment swallows the rest of the document.
				return Token{}, false
			}

			i += len(commentOpen) + end + len(commentClose)
			continue
		}

		if len(text[i:]) >= len(doctypeOpen) && strings.EqualFold(text[i:i+len(doctypeOpen)], doctypeOpen) {
			gt := strings.IndexByte(text[i:], '>')
			if gt < 0 {
				return Token{}, false
			}

			i += gt + 1
			continue
		}

		if tok, ok := At(text, i); ok {
			return tok, true
		}

		i++
	}

	return Token{}, false
}

// At matches a tag token starting exactly at offset i, which must point at a
// <. It performs no comment or DOCTYPE skipping; Next is the entry point for
// general scanning.
func At(text string, i int) (tok Token, ok bool) {
	if i < 0 || i >= len(text) || text[i] != '<' {
		return Token{}, false
	}

	j := i + 1
	closing := false

	if j < len(text) && text[j] == '/' {
		closing = true
		j++
	}

	nameStart := j
	if j >= len(text) || !isASCIILetter(text[j]) {
		return Token{}, false
	}
	j++

	for j < len(text) && (isASCIILetter(text[j]) || isASCIIDigit(text[j]) || text[j] == '-') {
		j++
	}

	name := strings.ToLower(text[nameStart:j])

	gt := strings.IndexByte(text[j:], '>')
	if gt < 0 {
		return Token{}, false
	}

	end := j + gt + 1
	attrsRaw := text[j : end-1]
	selfClosing := strings.HasSuffix(attrsRaw, "/")

	if selfClosing {
		attrsRaw = attrsRaw[:len(attrsRaw)-1]
	}

	return Token{
		Name:        name,
		Closing:     closing,
		SelfClosing: selfClosing || IsVoid(name),
		AttrsRaw:    strings.TrimSpace(attrsRaw),
		Start:       i,
		End:         end,
	}, true
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
