package tokenchain

import (
	"testing"

	"github.com/kestrel-tags/tagforge/internal/token"
)

func tok(lexeme string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: lexeme}
}

func TestPrependAddsToFront(t *testing.T) {
	c := New()
	c.Append(tok("b"))
	c.Append(tok("c"))
	c.Prepend(tok("a"))

	got := c.Tokens()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Lexeme != w {
			t.Errorf("Tokens()[%d] = %q, want %q", i, got[i].Lexeme, w)
		}
	}

	head, ok := c.HeadToken()
	if !ok || head.Lexeme != "a" {
		t.Errorf("HeadToken() = %q, ok=%v, want \"a\"", head.Lexeme, ok)
	}
}

func TestFindFirstReturnsEarliestMatch(t *testing.T) {
	c := New()
	c.Append(token.Token{Type: token.Keyword, Lexeme: "const"})
	c.Append(tok("x"))
	c.Append(token.Token{Type: token.Semicolon, Lexeme: ";"})
	c.Append(tok("y"))

	idx, got, found := c.FindFirst(token.Identifier)
	if !found || idx != 1 || got.Lexeme != "x" {
		t.Fatalf("FindFirst(Identifier) = (%d, %q, %v), want (1, \"x\", true)", idx, got.Lexeme, found)
	}

	if _, _, found := c.FindFirst(token.StringLiteral); found {
		t.Error("FindFirst(StringLiteral) found a match in a chain with none")
	}
}

func TestCondenseReplacesRangeWithOneToken(t *testing.T) {
	c := New()
	c.Append(tok("a"))
	c.Append(token.Token{Type: token.OpeningParenthesis, Lexeme: "("})
	c.Append(tok("b"))
	c.Append(token.Token{Type: token.ClosingParenthesis, Lexeme: ")"})
	c.Append(tok("c"))

	c.Condense(1, 3, func(seg []token.Token) token.Token {
		return token.Token{Type: token.ParenthesisChain, Lexeme: "(...)"}
	})

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	got := c.Tokens()
	want := []struct {
		lexeme string
		typ    token.Type
	}{
		{"a", token.Identifier},
		{"(...)", token.ParenthesisChain},
		{"c", token.Identifier},
	}
	for i, w := range want {
		if got[i].Lexeme != w.lexeme || got[i].Type != w.typ {
			t.Errorf("Tokens()[%d] = %+v, want lexeme %q type %v", i, got[i], w.lexeme, w.typ)
		}
	}
}

func TestCondenseAtChainBoundaries(t *testing.T) {
	c := New()
	c.Append(tok("a"))
	c.Append(tok("b"))
	c.Append(tok("c"))

	c.Condense(0, 1, func(seg []token.Token) token.Token {
		return token.Token{Type: token.ParenthesisChain, Lexeme: "ab"}
	})

	head, _ := c.HeadToken()
	if head.Lexeme != "ab" {
		t.Errorf("HeadToken() = %q, want \"ab\"", head.Lexeme)
	}
	tail, _ := c.TailToken()
	if tail.Lexeme != "c" {
		t.Errorf("TailToken() = %q, want \"c\"", tail.Lexeme)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
