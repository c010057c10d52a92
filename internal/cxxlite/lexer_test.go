package cxxlite

import (
	"testing"

	"movefix/internal/source"
)

func lexAll(t *testing.T, content string) []Token {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cxl", []byte(content))
	lx := New(fs.Get(fileID))
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "return while buffer")
	wantKinds := []Kind{Keyword, Keyword, Ident, EOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(wantKinds), len(toks), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := lexAll(t, "f(a, b) { return; }")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []Kind{Ident, LParen, Ident, Comma, Ident, RParen, LBrace, Keyword, Semi, RBrace, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestLexerColonColon(t *testing.T) {
	toks := lexAll(t, "std::move(s)")
	want := []Kind{Ident, ColonColon, Ident, LParen, Ident, RParen, EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello \"world\""`)
	if toks[0].Kind != String {
		t.Fatalf("expected a string token, got %s", toks[0].Kind)
	}
	if toks[0].Text != `"hello \"world\""` {
		t.Fatalf("unexpected string text %q", toks[0].Text)
	}
}

func TestLexerSkipsCommentsAndPreprocessorLines(t *testing.T) {
	toks := lexAll(t, "#include <utility>\n// a comment\nbuffer /* inline */ next")
	want := []Kind{Ident, Ident, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	if toks[0].Text != "buffer" || toks[1].Text != "next" {
		t.Fatalf("unexpected token text: %+v", toks)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cxl", []byte("a b"))
	lx := New(fs.Get(fileID))

	peeked := lx.Peek()
	if peeked.Text != "a" {
		t.Fatalf("expected peek to return 'a', got %q", peeked.Text)
	}
	next := lx.Next()
	if next.Text != "a" {
		t.Fatalf("expected next to return the peeked token 'a', got %q", next.Text)
	}
	after := lx.Next()
	if after.Text != "b" {
		t.Fatalf("expected next to advance to 'b', got %q", after.Text)
	}
}
