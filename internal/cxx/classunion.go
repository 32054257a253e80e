package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// classTagKind maps a scope.Kind understood by parseClassStructOrUnion to
// the tag kind it implies.
func classTagKind(k scope.Kind) tagsink.Kind {
	switch k {
	case scope.KindStruct:
		return tagsink.KindStruct
	case scope.KindUnion:
		return tagsink.KindUnion
	default:
		return tagsink.KindClass
	}
}

// parseClassStructOrUnion implements §4.4: a class/struct/union header,
// optional base clause, and body, followed by the full-declaration
// trailer.
func (s *State) parseClassStructOrUnion(kind scope.Kind) bool {
	wasTypedef := s.keywords.has(seenTypedef)

	s.parsingClassStructOrUnionDeclaration = true
	terminators := token.EOF | token.SingleColon | token.Semicolon | token.OpeningBracket | token.SmallerThanSign
	if kind != scope.KindClass {
		terminators |= token.ParenthesisChain
	}

	for {
		if !s.parseUpToOneOf(s.chain, terminators) {
			s.parsingClassStructOrUnionDeclaration = false
			return false
		}
		last, _ := s.chain.TailToken()
		if last.Type != token.SmallerThanSign {
			break
		}
		// Template specialization arguments: fold and keep scanning for
		// the real terminator. Per the open question left undecided
		// upstream, the folded arguments are not attached to the tag.
		s.chain.DestroyLast()
		opener := last
		openers := token.OpeningParenthesis | token.OpeningBracket | token.OpeningSquareParenthesis | token.SmallerThanSign
		if !s.parseAndCondenseCurrentSubchain(s.chain, opener, openers, false) {
			s.parsingClassStructOrUnionDeclaration = false
			return false
		}
	}
	s.parsingClassStructOrUnionDeclaration = false

	last, _ := s.chain.TailToken()

	if last.Type == token.ParenthesisChain {
		// Looks like a function declaration (e.g. "struct S *getS();"):
		// finish the statement and classify it as a prototype or variable
		// declaration instead of discarding the chain.
		return s.bailToOtherStatement()
	}

	if last.Type == token.Semicolon {
		if s.chain.Len() > 3 {
			if wasTypedef {
				s.emitTrailingTypedefFromChain()
			} else {
				s.extractVariableDeclarations(s.chain)
			}
		}
		s.newStatement()
		return true
	}

	if last.Type == token.EOF {
		s.newStatement()
		return true
	}

	// Single colon or opening bracket: find the tag name.
	idx, name, found := s.chain.FindLast(token.Identifier)
	var nameTok token.Token
	pushed := 0
	if found {
		nameTok = name
		pushed = s.pushQualifierPrefix(idx)
	} else {
		nameTok = anonymousIdentifier(last.Line)
	}

	fullName := s.scope.FullName(nameTok.Lexeme)
	s.chain.Destroy()
	s.chain = tokenchain.New()

	var inheritance string
	if last.Type == token.SingleColon {
		baseChain := tokenchain.New()
		if !s.parseUpToOneOf(baseChain, token.EOF|token.Semicolon|token.OpeningBracket) {
			baseChain.Destroy()
			s.newStatement()
			return false
		}
		baseLast, _ := baseChain.TailToken()
		if baseLast.Type == token.Semicolon || baseLast.Type == token.EOF {
			baseChain.Destroy()
			s.newStatement()
			return true
		}
		baseChain.DestroyLast() // drop the "{"
		inheritance = renderChain(baseChain)
		baseChain.Destroy()
	}

	ip := s.sink.Begin(fullName, classTagKind(kind), tagsink.Position{File: s.file, Line: nameTok.Line})
	ip.Record.FileScope = s.fileScope
	if inheritance != "" {
		ip.Record.Inheritance = []string{inheritance}
	}
	s.attachPendingDoc(ip)
	s.sink.Commit(ip)

	s.scope.Push(nameTok.Lexeme, kind)

	if !s.parseBlock(true) {
		for i := 0; i <= pushed; i++ {
			s.scope.Pop()
		}
		return false
	}
	for i := 0; i <= pushed; i++ {
		s.scope.Pop()
	}

	s.fullDeclarationTrailer(wasTypedef, classTagKind(kind), nameTok.Lexeme)
	s.newStatement()
	return true
}

// pushQualifierPrefix walks backward from chain index idx (the tag's own
// name) over ::-qualifier pairs, pushing each qualifying identifier as an
// (access-unknown) class-kind scope, exactly as the original does for
// both the enum and class/struct/union parsers. Returns how many scopes
// were pushed.
func (s *State) pushQualifierPrefix(idx int) int {
	pushed := 0
	i := idx - 2
	var names []string
	for i >= 0 {
		colon, okC := s.chain.At(i)
		if !okC || colon.Type != token.MultipleColons {
			break
		}
		ident, okI := s.chain.At(i - 1)
		if !okI || ident.Type != token.Identifier {
			break
		}
		names = append([]string{ident.Lexeme}, names...)
		i -= 2
	}
	for _, n := range names {
		s.scope.Push(n, scope.KindClass)
		s.scope.SetAccess(scope.AccessUnknown)
		pushed++
	}
	return pushed
}

func anonymousIdentifier(line int) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: "<anonymous>", Line: line}
}
