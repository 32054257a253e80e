package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/token"
)

// parseBlock implements §4.2, the statement loop. isNested is true when
// parsing the body of a class/struct/union/namespace/control statement,
// where a closing brace ends the call successfully; at file scope
// (isNested == false) the only way out is EOF.
func (s *State) parseBlock(isNested bool) bool {
	for {
		s.newStatement()
		done, ok := s.parseOneStatement(isNested)
		if !ok {
			if !s.resynchronize(isNested) {
				return true
			}
			continue
		}
		if done {
			return true
		}
	}
}

// resynchronize discards tokens after a helper reports a syntax error,
// up to the next statement-ending ";" or block-ending "}" at the same
// bracket depth, so one malformed statement does not abort the whole
// file (e.g. a bare top-level "a > b" relational expression, which the
// condenser reports as an unmatched closer since '>' only balances a
// '<' inside a recognized template argument list). Reads raw tokens
// directly rather than through the condenser, since the statement
// already failed to condense. Returns false when the enclosing block
// itself is finished: EOF, or — when nested — the enclosing "}".
func (s *State) resynchronize(isNested bool) bool {
	depth := 0
	for {
		tok, got := s.advance()
		if !got || tok.Type == token.EOF {
			return false
		}
		switch tok.Type {
		case token.OpeningParenthesis, token.OpeningSquareParenthesis, token.OpeningBracket:
			depth++
		case token.ClosingParenthesis, token.ClosingSquareParenthesis:
			if depth > 0 {
				depth--
			}
		case token.ClosingBracket:
			if depth > 0 {
				depth--
				continue
			}
			return !isNested
		case token.Semicolon:
			if depth == 0 {
				return true
			}
		}
	}
}

// parseOneStatement reads and dispatches a single statement, returning
// done=true when the enclosing block is finished (EOF, or a closing
// brace while nested).
func (s *State) parseOneStatement(isNested bool) (done bool, ok bool) {
	for {
		tok, got := s.advance()
		if !got || tok.Type == token.EOF {
			return true, true
		}
		if tok.Type == token.ClosingBracket {
			if isNested {
				return true, true
			}
			// Stray top-level closing brace: skip it and keep parsing.
			return false, true
		}
		if tok.Type == token.OpeningBracket {
			// A compound-statement body (e.g. after a control statement's
			// condition) or a bare block: parse it as a nested block.
			return false, s.parseBlock(true)
		}

		if tok.Type == token.Keyword {
			switch tok.KeywordID {
			case token.KeywordTypedef:
				s.keywords |= seenTypedef
				s.chain.Append(tok)
				continue

			case token.KeywordNamespace:
				return false, s.parseNamespace()
			case token.KeywordClass:
				return false, s.parseClassStructOrUnion(scope.KindClass)
			case token.KeywordStruct:
				return false, s.parseClassStructOrUnion(scope.KindStruct)
			case token.KeywordUnion:
				return false, s.parseClassStructOrUnion(scope.KindUnion)
			case token.KeywordEnum:
				return false, s.parseEnum()

			case token.KeywordPublic, token.KeywordPrivate, token.KeywordProtected:
				return false, s.parseAccessSpecifier(tok.KeywordID, tok.Line)

			case token.KeywordIf, token.KeywordFor, token.KeywordWhile, token.KeywordSwitch:
				return false, s.parseControlStatement()

			case token.KeywordReturn:
				s.keywords |= seenReturn
				s.chain.Append(tok)
				ok := s.parseUpToOneOf(s.chain, token.EOF|token.Semicolon|token.ClosingBracket)
				return false, ok

			case token.KeywordUsing:
				return false, s.parseUsing()

			case token.KeywordTemplate:
				s.keywords |= seenTemplate
				tpl, okTpl := s.parseTemplateParameters()
				if !okTpl {
					return false, false
				}
				s.templateChain = tpl
				continue

			case token.KeywordStatic, token.KeywordExtern, token.KeywordInline,
				token.KeywordVirtual, token.KeywordExplicit, token.KeywordOperator,
				token.KeywordConst, token.KeywordConstexpr,
				token.KeywordFriend, token.KeywordMutable:
				s.recordModifier(tok.KeywordID)
				s.chain.Append(tok)
				continue
			}
		}

		// Anything else: collect the rest of the statement and classify it.
		s.chain.Append(tok)
		if s.keywords.has(seenTypedef) {
			return false, s.parseGenericTypedef(s.chain)
		}
		if !s.parseUpToOneOf(s.chain, token.EOF|token.Semicolon|token.ClosingBracket) {
			return false, false
		}
		return false, s.analyzeOtherStatement(s.chain)
	}
}

func (s *State) recordModifier(k token.Keyword) {
	switch k {
	case token.KeywordStatic:
		s.keywords |= seenStatic
	case token.KeywordExtern:
		s.keywords |= seenExtern
	case token.KeywordInline:
		s.keywords |= seenInline
	case token.KeywordVirtual:
		s.keywords |= seenVirtual
	case token.KeywordExplicit:
		s.keywords |= seenExplicit
	case token.KeywordOperator:
		s.keywords |= seenOperator
	case token.KeywordConst:
		s.keywords |= seenConst
	case token.KeywordConstexpr:
		s.keywords |= seenConstexpr
	case token.KeywordFriend:
		s.keywords |= seenFriend
	case token.KeywordMutable:
		s.keywords |= seenMutable
	}
}
