package main

import (
	goerrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"htmlscope/internal/locator"
	"htmlscope/internal/outline"
	"htmlscope/internal/render"
	"htmlscope/internal/scanner"
	"htmlscope/internal/workspace"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "htmlscope"

// locateCommand resolves [uri, offset] to the range of the complete element
// at that offset. The client owns the actual deletion: it shows the returned
// text for confirmation, applies the edit and re-requests the outline.
const locateCommand = "htmlscope.locateElement"

var version string = "0.0.1"
var handler protocol.Handler

var documents = map[string]string{}
var ws = workspace.New("")

type SituatedErr interface {
	Unwrap() error
	At() scanner.Location
}

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents[params.TextDocument.URI] = params.TextDocument.Text

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := documents[params.TextDocument.URI]
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					documents[params.TextDocument.URI] = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					documents[params.TextDocument.URI] = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDocumentSymbol: documentSymbol,
		WorkspaceExecuteCommand:    executeCommand,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

// handleDocument refreshes the cached analysis for a document and clears any
// stale diagnostics. Building the outline tolerates malformed markup, so a
// change can never produce a new diagnostic by itself.
func handleDocument(context *glsp.Context, docURI string) error {
	filePath, err := docPath(docURI)
	if err != nil {
		return err
	}

	contents, ok := documents[docURI]
	if !ok {
		return nil
	}

	ws.LoadWithContents(filePath, []byte(contents))

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func documentSymbol(context *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	content, ok := documents[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}

	filePath, err := docPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	doc := ws.LoadWithContents(filePath, []byte(content))

	symbols := make([]protocol.DocumentSymbol, 0, len(doc.Roots))
	for _, el := range doc.Roots {
		symbols = append(symbols, symbolFor(doc.Text, el))
	}

	return symbols, nil
}

func symbolFor(text string, el *outline.Element) protocol.DocumentSymbol {
	sel := openingTagRange(text, el)

	// The full range spans the element and all of its descendants. For
	// unterminated elements only the opening tag can be reported. The
	// probe offset sits just inside the opening tag so the element itself
	// anchors the search.
	full := sel
	if r, err := locator.Locate(text, el.Start+1); err == nil {
		full = protocol.Range{
			Start: pos(scanner.LocationAt(text, r.Start)),
			End:   pos(scanner.LocationAt(text, r.End)),
		}
	}

	kind := protocol.SymbolKindObject
	if el.SelfClosing {
		kind = protocol.SymbolKindField
	}

	sym := protocol.DocumentSymbol{
		Name:           render.Label(el),
		Kind:           kind,
		Range:          full,
		SelectionRange: sel,
	}

	if len(el.Classes) > 0 {
		sym.Detail = ptr(strings.Join(el.Classes, " "))
	}

	for _, child := range el.Children {
		sym.Children = append(sym.Children, symbolFor(text, child))
	}

	return sym
}

func openingTagRange(text string, el *outline.Element) protocol.Range {
	end := el.Start

	if tok, ok := scanner.Next(text, el.Start); ok {
		end = tok.End
	}

	return protocol.Range{
		Start: pos(scanner.LocationAt(text, el.Start)),
		End:   pos(scanner.LocationAt(text, end)),
	}
}

type elementRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

func executeCommand(context *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != locateCommand {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 2 {
		return nil, fmt.Errorf("command %q expects [uri, offset]", locateCommand)
	}

	docURI, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("command %q expects a document URI as its first argument", locateCommand)
	}

	offset, ok := params.Arguments[1].(float64)
	if !ok {
		return nil, fmt.Errorf("command %q expects a character offset as its second argument", locateCommand)
	}

	content, ok := documents[docURI]
	if !ok {
		return nil, fmt.Errorf("document %q not found", docURI)
	}

	r, err := locator.Locate(content, int(offset))
	if err != nil {
		diag := protocol.Diagnostic{
			Severity: ptr(protocol.DiagnosticSeverityError),
			Message:  "could not find an element here",
		}

		var poserr SituatedErr

		if goerrors.As(err, &poserr) {
			diag.Range = protocol.Range{
				Start: pos(poserr.At()),
				End:   pos(poserr.At()),
			}
		}

		context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         docURI,
			Diagnostics: []protocol.Diagnostic{diag},
		})

		return nil, nil
	}

	return elementRange{
		Start: r.Start,
		End:   r.End,
		Text:  content[r.Start:r.End],
	}, nil
}

func docPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return filepath.Clean(url.Path), nil
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{locateCommand},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func pos(l scanner.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(l.Line),
		Character: uint32(l.Column),
	}
}
