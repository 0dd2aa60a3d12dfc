// Package lsp serves case file diagnostics over the Language Server Protocol.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/duplex/casefile"
)

const lsName = "duplex"

var log = commonlog.GetLogger("duplex.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]string
}

func NewServer(version string) *Server {
	s := &Server{
		version: version,
		docs:    make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	if text, ok := s.document(params.TextDocument.URI); ok {
		s.update(ctx, params.TextDocument.URI, text)
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read %s: %s", path, err)
		return nil
	}
	s.update(ctx, params.TextDocument.URI, string(data))
	return nil
}

// document returns the last text received for an open document.
func (s *Server) document(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) update(ctx *glsp.Context, uri string, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()

	filename, err := uriToPath(uri)
	if err != nil {
		filename = uri
	}
	diagnostics := Diagnostics(filename, text)
	log.Debugf("%s: %d diagnostics", filename, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics runs the case file text and converts its failures into diagnostics.
func Diagnostics(filename, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	failures, err := casefile.Check(filename, strings.NewReader(text))
	if err != nil {
		failures = append(failures, casefile.Failure{Line: 1, Column: 1, Message: err.Error()})
	}

	lines := strings.Split(text, "\n")
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, f := range failures {
		line := ""
		if f.Line >= 1 && f.Line <= len(lines) {
			line = lines[f.Line-1]
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: lineIndex(f.Line), Character: utf16Column(line, f.Column)},
				End:   protocol.Position{Line: lineIndex(f.Line), Character: utf16Column(line, -1)},
			},
			Severity: &severity,
			Source:   &source,
			Message:  f.Message,
		})
	}
	return diagnostics
}

func lineIndex(line int) protocol.UInteger {
	if line < 1 {
		return 0
	}
	return protocol.UInteger(line - 1)
}

// utf16Column converts a 1-based rune column into a 0-based UTF-16 offset.
// A negative column means the end of the line.
func utf16Column(line string, column int) protocol.UInteger {
	runes := []rune(strings.TrimSuffix(line, "\r"))
	if column < 1 || column-1 > len(runes) {
		column = len(runes) + 1
	}
	return protocol.UInteger(len(utf16.Encode(runes[:column-1])))
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
