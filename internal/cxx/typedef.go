package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseGenericTypedef implements §4.8: "typedef T1 T2;" forms not routed
// through the class/struct/union/enum parsers. chain already holds the
// "typedef" keyword and whatever token triggered the fallthrough to this
// handler; it collects the rest up to `;`/`}`/EOF, or bails early if
// extern/typedef/static reappears (a sign this statement was
// misclassified as a typedef body).
func (s *State) parseGenericTypedef(chain *tokenchain.Chain) bool {
	ok := true
loop:
	for {
		tok, got := s.advance()
		switch {
		case !got || tok.Type == token.EOF:
			break loop
		case tok.Type == token.Keyword && isBlockingTypedefKeyword(tok.KeywordID):
			break loop
		case tok.Type == token.Semicolon || tok.Type == token.ClosingBracket:
			break loop
		case token.DefaultOpeners.Has(tok.Type) && tok.Type.IsOpener():
			if !s.parseAndCondenseCurrentSubchain(chain, tok, token.DefaultOpeners, false) {
				ok = false
				break loop
			}
		case tok.Type.IsCloser():
			ok = s.fail(tok.Line, diag.ErrUnmatchedCloser, "unmatched closer in typedef")
			break loop
		default:
			chain.Append(tok)
		}
	}

	if ok {
		if _, name, found := chain.FindLast(token.Identifier); found {
			ip := s.sink.Begin(s.scope.FullName(name.Lexeme), tagsink.KindTypedef, tagsink.Position{File: s.file, Line: name.Line})
			ip.Record.FileScope = s.fileScope
			s.attachPendingDoc(ip)
			s.sink.Commit(ip)
		}
	}
	s.newStatement()
	return ok
}

func isBlockingTypedefKeyword(k token.Keyword) bool {
	switch k {
	case token.KeywordExtern, token.KeywordTypedef, token.KeywordStatic:
		return true
	default:
		return false
	}
}
