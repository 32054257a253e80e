package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseUpToOneOf advances chain by appending tokens from the lexer until
// the current token's type is in terminators, folding any default-opener
// run ( [ { encountered along the way into a subchain token. When EOF is
// among terminators, reaching it appends an EOF token as the chain's last
// token, like any other terminator. Returns false on an unmatched closer
// (syntax error) or on premature EOF (EOF reached without EOF being
// included in terminators).
func (s *State) parseUpToOneOf(chain *tokenchain.Chain, terminators token.Type) bool {
	return s.parseAndCondenseSubchainsUpToOneOf(chain, terminators, token.DefaultOpeners)
}

// parseAndCondenseSubchainsUpToOneOf is parseUpToOneOf generalized to an
// explicit opener set, so callers that also want `<` treated as an
// opener (template argument lists) can add SmallerThanSign to openers.
func (s *State) parseAndCondenseSubchainsUpToOneOf(chain *tokenchain.Chain, terminators, openers token.Type) bool {
	for {
		tok, ok := s.advance()
		if !ok || tok.Type == token.EOF {
			if !terminators.Has(token.EOF) {
				return false
			}
			chain.Append(token.Token{Type: token.EOF, Line: tok.Line})
			return true
		}

		if tok.Type.Has(terminators) {
			chain.Append(tok)
			return true
		}

		if openers.Has(tok.Type) && tok.Type.IsOpener() {
			acceptEOF := terminators.Has(token.EOF)
			if tok.Type == token.OpeningBracket && s.lang == LangCpp && s.openingBracketIsLambda(chain) {
				if !s.handleLambda(chain, tok, openers) {
					return false
				}
			} else if !s.parseAndCondenseCurrentSubchain(chain, tok, openers, acceptEOF) {
				return false
			}

			if last, ok := chain.TailToken(); ok && last.Type.Has(terminators) {
				return true
			}
			continue
		}

		if tok.Type.IsCloser() {
			return s.fail(tok.Line, diag.ErrUnmatchedCloser, "unmatched closer %s", tok)
		}

		chain.Append(tok)
	}
}

// parseAndCondenseCurrentSubchain implements the condenser's third
// primitive directly: given the detached opener token, build its nested
// chain and append the resulting subchain-marker token to outer.
func (s *State) parseAndCondenseCurrentSubchain(outer *tokenchain.Chain, opener token.Token, openers token.Type, acceptEOF bool) bool {
	inner := tokenchain.New()
	inner.Append(opener)

	terminators := opener.Type.Closer()
	if acceptEOF {
		terminators |= token.EOF
	}

	if !s.parseAndCondenseSubchainsUpToOneOf(inner, terminators, openers) {
		inner.Destroy()
		return false
	}

	marker := token.Token{
		Type:   opener.Type.ChainMarker(),
		Lexeme: opener.Lexeme,
		Line:   opener.Line,
		Chain:  inner,
	}
	outer.Append(marker)
	return true
}

// openingBracketIsLambda reports whether the `{` about to be folded
// looks like a lambda body rather than a scope-opening brace: a `[...]`
// capture subchain at the tail of chain, optionally followed by a
// `(...)` parameter-list subchain, with nothing else between them and
// the brace.
func (s *State) openingBracketIsLambda(chain *tokenchain.Chain) bool {
	n := chain.Len()
	if n == 0 {
		return false
	}
	last, _ := chain.At(n - 1)
	if last.Type == token.SquareParenthesisChain {
		return true
	}
	if last.Type == token.ParenthesisChain && n >= 2 {
		prev, _ := chain.At(n - 2)
		return prev.Type == token.SquareParenthesisChain
	}
	return false
}

// handleLambda folds a lambda body the same way any other brace-delimited
// subchain is folded. The only contract the core promises is that a
// lambda is not mistaken for a function body (which would otherwise
// close the enclosing scope) or for a class/struct/union/namespace body:
// since scope pushes happen only in the declaration-kind parsers, never
// as a side effect of seeing `{`, plain subchain folding already
// satisfies that contract.
func (s *State) handleLambda(chain *tokenchain.Chain, opener token.Token, openers token.Type) bool {
	return s.parseAndCondenseCurrentSubchain(chain, opener, openers, false)
}
