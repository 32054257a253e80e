package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/token"
)

// parseAccessSpecifier implements §4.7: a bare "public:"/"private:"/
// "protected:" inside a class/struct/union body.
func (s *State) parseAccessSpecifier(kw token.Keyword, line int) bool {
	switch s.scope.CurrentKind() {
	case scope.KindClass, scope.KindStruct, scope.KindUnion:
	default:
		return s.fail(line, diag.ErrWrongScope, "access specifier outside a class, struct, or union")
	}

	switch kw {
	case token.KeywordPublic:
		s.scope.SetAccess(scope.AccessPublic)
	case token.KeywordPrivate:
		s.scope.SetAccess(scope.AccessPrivate)
	case token.KeywordProtected:
		s.scope.SetAccess(scope.AccessProtected)
	}

	chain := s.chain
	ok := s.parseUpToOneOf(chain, token.EOF|token.SingleColon|token.Semicolon|token.ClosingBracket)
	s.newStatement()
	return ok
}
