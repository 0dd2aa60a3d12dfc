package lsp

import (
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnostics(t *testing.T) {
	text := "prefix * digit\nparse \"123\" \"12\" \"3\"\n  frobnicate\n"

	diagnostics := Diagnostics("x.cases", text)
	if len(diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(diagnostics), diagnostics)
	}

	first := diagnostics[0]
	if first.Range.Start.Line != 1 || first.Range.Start.Character != 0 {
		t.Errorf("start = %+v, want line 1 character 0", first.Range.Start)
	}
	if first.Range.End.Line != 1 || first.Range.End.Character != 20 {
		t.Errorf("end = %+v, want line 1 character 20", first.Range.End)
	}
	if first.Severity == nil || *first.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", first.Severity)
	}
	if first.Source == nil || *first.Source != "duplex" {
		t.Errorf("source = %v", first.Source)
	}
	if !strings.Contains(first.Message, `want "12", "3"`) {
		t.Errorf("message = %q", first.Message)
	}

	second := diagnostics[1]
	if second.Range.Start.Line != 2 || second.Range.Start.Character != 2 {
		t.Errorf("start = %+v, want line 2 character 2", second.Range.Start)
	}
	if !strings.Contains(second.Message, "unknown directive") {
		t.Errorf("message = %q", second.Message)
	}
}

func TestDiagnosticsClean(t *testing.T) {
	diagnostics := Diagnostics("ok.cases", "prefix 1... digit\nparse \"12a\" \"12\" \"a\"\n")
	if diagnostics == nil || len(diagnostics) != 0 {
		t.Errorf("diagnostics = %#v, want an empty list", diagnostics)
	}
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   protocol.UInteger
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", -1, 3},
		{"abc", 9, 3},
		{"a\U0001F600b", 3, 3},
		{"a\U0001F600b", -1, 4},
		{"ab\r", -1, 2},
	}
	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.column); got != tt.want {
			t.Errorf("utf16Column(%q, %d) = %d, want %d", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/some%20dir/a.cases")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/some dir/a.cases" {
		t.Errorf("path = %q", path)
	}
	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("path = %q", path)
	}
}

func TestInitialize(t *testing.T) {
	s := NewServer("1.2.3")
	result, err := s.initialize(nil, &protocol.InitializeParams{})
	if err != nil {
		t.Fatal(err)
	}
	res, ok := result.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("result = %T", result)
	}
	if res.ServerInfo == nil || res.ServerInfo.Name != "duplex" || *res.ServerInfo.Version != "1.2.3" {
		t.Errorf("server info = %+v", res.ServerInfo)
	}
	sync, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok || sync.Change == nil || *sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("text document sync = %#v", res.Capabilities.TextDocumentSync)
	}
}

func TestDidSaveUsesOpenDocument(t *testing.T) {
	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				t.Errorf("method = %q", method)
			}
			published = append(published, params.(protocol.PublishDiagnosticsParams))
		},
	}

	// The URI points nowhere on disk, so a save can only be checked from memory.
	uri := "file:///nonexistent/dir/open.cases"
	s := NewServer("test")
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "prefix 5.\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 2 {
		t.Fatalf("published %d times, want 2", len(published))
	}
	for i, p := range published {
		if p.URI != uri || len(p.Diagnostics) != 1 {
			t.Errorf("publish %d = %+v, want one diagnostic", i, p)
		}
	}

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.document(uri); ok {
		t.Error("closed document is still stored")
	}
	if last := published[len(published)-1]; len(last.Diagnostics) != 0 {
		t.Errorf("close published %d diagnostics, want 0", len(last.Diagnostics))
	}
}
