package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseControlStatement implements §4.9: if/for/while/switch. The
// condition is consumed and condensed into a single subchain, which
// itself is discarded (no tag results from a condition). A raw opening
// brace reached directly (condition-less or malformed input) is parsed
// here as a nested block; otherwise the following statement or block is
// left for the outer loop to parse on its next iteration.
func (s *State) parseControlStatement() bool {
	chain := tokenchain.New()
	ok := s.parseUpToOneOf(chain, token.EOF|token.Semicolon|token.OpeningBracket|token.ParenthesisChain)
	last, _ := chain.TailToken()
	chain.Destroy()
	if !ok {
		s.newStatement()
		return false
	}
	if last.Type == token.OpeningBracket {
		s.newStatement()
		return s.parseBlock(true)
	}
	s.newStatement()
	return true
}
