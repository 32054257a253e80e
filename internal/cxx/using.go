package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseUsing handles the three C++ forms of `using`: a using-directive
// ("using namespace N;", which imports nothing taggable), a type alias
// ("using Name = Type;", emitted as a Using tag with Type set), and a
// using-declaration ("using Base::member;", emitted as a Using tag for
// the imported name).
func (s *State) parseUsing() bool {
	chain := tokenchain.New()
	ok := s.parseUpToOneOf(chain, token.EOF|token.Semicolon)
	tokens := chain.Tokens()
	if !ok {
		chain.Destroy()
		s.newStatement()
		return false
	}
	if n := len(tokens); n > 0 {
		switch tokens[n-1].Type {
		case token.Semicolon, token.EOF:
			tokens = tokens[:n-1]
		}
	}
	defer func() {
		chain.Destroy()
		s.newStatement()
	}()

	if len(tokens) == 0 {
		return true
	}
	if tokens[0].Type == token.Keyword && tokens[0].KeywordID == token.KeywordNamespace {
		return true
	}

	if eqIdx := findAssignment(tokens); eqIdx > 0 && tokens[eqIdx-1].Type == token.Identifier {
		nameTok := tokens[eqIdx-1]
		typeName := renderTokens(tokens[eqIdx+1:])
		ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), tagsink.KindUsing, tagsink.Position{File: s.file, Line: nameTok.Line})
		ip.Record.FileScope = s.fileScope
		ip.Record.Type = tagsink.TypeRef{Name: typeName}
		s.attachPendingDoc(ip)
		s.sink.Commit(ip)
		return true
	}

	if idx := lastIdentifierIndex(tokens); idx >= 0 {
		nameTok := tokens[idx]
		ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), tagsink.KindUsing, tagsink.Position{File: s.file, Line: nameTok.Line})
		ip.Record.FileScope = s.fileScope
		s.attachPendingDoc(ip)
		s.sink.Commit(ip)
	}
	return true
}

func findAssignment(tokens []token.Token) int {
	for i, t := range tokens {
		if t.Type == token.Assignment {
			return i
		}
	}
	return -1
}
