package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseNamespace handles "namespace NAME { ... }" and the anonymous
// "namespace { ... }" form: emit a namespace tag, push a namespace
// scope, recurse into the body, pop.
func (s *State) parseNamespace() bool {
	chain := tokenchain.New()
	ok := s.parseUpToOneOf(chain, token.EOF|token.OpeningBracket|token.Semicolon)
	last, _ := chain.TailToken()

	name := "<anonymous>"
	if chain.Len() > 1 {
		if first, okFirst := chain.At(0); okFirst && first.Type == token.Identifier {
			name = first.Lexeme
		}
	}
	line := last.Line
	chain.Destroy()

	if !ok {
		s.newStatement()
		return false
	}
	if last.Type != token.OpeningBracket {
		// "namespace Alias = Other;" or a stray forward reference: tolerate.
		s.newStatement()
		return true
	}

	ip := s.sink.Begin(s.scope.FullName(name), tagsink.KindNamespace, tagsink.Position{File: s.file, Line: line})
	ip.Record.FileScope = s.fileScope
	s.attachPendingDoc(ip)
	s.sink.Commit(ip)

	s.scope.Push(name, scope.KindNamespace)
	s.newStatement()
	if !s.parseBlock(true) {
		s.scope.Pop()
		return false
	}
	s.scope.Pop()
	return true
}
