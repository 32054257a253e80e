package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseTemplateParameters reads the `<...>` parameter list immediately
// following a `template` keyword and returns it as a standalone chain
// (including the angle brackets themselves), for later rendering by
// templateParamStrings. Nested angle brackets, parens, and braces within
// the list are condensed like anywhere else.
func (s *State) parseTemplateParameters() (*tokenchain.Chain, bool) {
	opener, got := s.advance()
	if !got || opener.Type != token.SmallerThanSign {
		return nil, true
	}
	inner := tokenchain.New()
	inner.Append(opener)
	openers := token.DefaultOpeners | token.SmallerThanSign
	if !s.parseAndCondenseSubchainsUpToOneOf(inner, token.GreaterThanSign|token.EOF, openers) {
		inner.Destroy()
		return nil, false
	}
	return inner, true
}

// templateParamStrings renders a parameter-list chain (as produced by
// parseTemplateParameters) into one string per top-level comma-separated
// parameter, with the enclosing angle brackets stripped.
func templateParamStrings(chain *tokenchain.Chain) []string {
	tokens := chain.Tokens()
	if len(tokens) < 2 {
		return nil
	}
	tokens = tokens[1:]
	if last := tokens[len(tokens)-1]; last.Type == token.GreaterThanSign {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil
	}

	var params []string
	start := 0
	for i, t := range tokens {
		if t.Type == token.Comma {
			params = append(params, renderTokens(tokens[start:i]))
			start = i + 1
		}
	}
	params = append(params, renderTokens(tokens[start:]))
	return params
}
