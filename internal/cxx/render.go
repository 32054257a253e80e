package cxx

import (
	"strings"

	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

const wordTokens = token.Identifier | token.Keyword | token.Number | token.StringLiteral | token.CharLiteral

// isWordLike reports whether t reads as a word (needs a surrounding
// space against another word) rather than punctuation.
func isWordLike(t token.Type) bool { return t.Has(wordTokens) }

// renderChain renders a condensed chain back into compact, canonical
// source text: a space is inserted between two tokens only when both
// would otherwise visually merge into one word, matching the ctags
// convention of canonicalizing away incidental whitespace in signatures
// and inheritance clauses.
func renderChain(c *tokenchain.Chain) string {
	return renderTokens(c.Tokens())
}

func renderTokens(tokens []token.Token) string {
	var b strings.Builder
	var prevType token.Type
	first := true
	for _, t := range tokens {
		text := renderToken(t)
		if text == "" {
			continue
		}
		if !first && isWordLike(prevType) && isWordLike(t.Type) {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		prevType = t.Type
		first = false
	}
	return b.String()
}

func renderToken(t token.Token) string {
	if t.Chain != nil {
		if ch, ok := t.Chain.(*tokenchain.Chain); ok {
			return renderChain(ch)
		}
	}
	return t.Lexeme
}
