package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// emitTrailingTypedefFromChain emits a typedef tag for the identifier
// immediately preceding the chain's trailing terminator, used by the
// enum and class/struct/union parsers' `;`-exit path when SeenTypedef is
// set (e.g. "typedef struct X Y;", which leaves "typedef X Y ;" in the
// chain: the typedef keyword is kept and the struct keyword is not).
func (s *State) emitTrailingTypedefFromChain() {
	tokens := s.chain.Tokens()
	if len(tokens) < 2 {
		return
	}
	nameTok := tokens[len(tokens)-2]
	if nameTok.Type != token.Identifier {
		return
	}
	ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), tagsink.KindTypedef, tagsink.Position{File: s.file, Line: nameTok.Line})
	ip.Record.FileScope = s.fileScope
	s.attachPendingDoc(ip)
	s.sink.Commit(ip)
}

// extractVariableDeclarations is the variable-list extractor shared by
// the enum/class/union trailers and analyzeOtherStatement's fallback
// path. It splits chain on top-level commas (safe because parens,
// brackets, and braces are already condensed into single subchain
// tokens by this point) and, for each comma-separated declarator,
// emits a tag for its last identifier using the first declarator's
// leading tokens as the shared type.
func (s *State) extractVariableDeclarations(chain *tokenchain.Chain) {
	tokens := chain.Tokens()
	if n := len(tokens); n > 0 {
		switch tokens[n-1].Type {
		case token.Semicolon, token.ClosingBracket, token.EOF:
			tokens = tokens[:n-1]
		}
	}
	if len(tokens) == 0 {
		return
	}

	var segments [][]token.Token
	start := 0
	for i, t := range tokens {
		if t.Type == token.Comma {
			segments = append(segments, tokens[start:i])
			start = i + 1
		}
	}
	segments = append(segments, tokens[start:])

	firstNameIdx := lastIdentifierIndex(segments[0])
	if firstNameIdx < 0 {
		return
	}
	typeName := renderTokens(segments[0][:firstNameIdx])

	kind := tagsink.KindVariable
	if s.scope.InsideClass() {
		kind = tagsink.KindMember
	}

	emit := func(seg []token.Token) {
		idx := lastIdentifierIndex(seg)
		if idx < 0 {
			return
		}
		nameTok := seg[idx]
		ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), kind, tagsink.Position{File: s.file, Line: nameTok.Line})
		ip.Record.FileScope = s.fileScope
		ip.Record.Type = tagsink.TypeRef{Name: typeName}
		if kind == tagsink.KindMember {
			ip.Record.Access = s.scope.CurrentAccess().String()
		}
		s.attachPendingDoc(ip)
		s.sink.Commit(ip)
	}

	for _, seg := range segments {
		emit(seg)
	}
}

// bailToOtherStatement is the exit the enum/class/struct/union header
// scanner takes when it finds a ParenthesisChain where a tag name was
// expected (e.g. "struct S *getS();" — the "struct S" return type of a
// function, not a struct declaration). The chain built so far ends in
// that ParenthesisChain; finish collecting the statement exactly as the
// generic fallback does, then classify the whole thing instead of
// discarding it, so the caller's next newStatement() doesn't throw away
// a still-unclassified prototype or variable declaration.
func (s *State) bailToOtherStatement() bool {
	if !s.parseUpToOneOf(s.chain, token.EOF|token.Semicolon|token.ClosingBracket) {
		return false
	}
	return s.analyzeOtherStatement(s.chain)
}

func lastIdentifierIndex(tokens []token.Token) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type == token.Identifier {
			return i
		}
	}
	return -1
}

// scanFunctionSignature looks for a parenthesis subchain in declarator
// position: an Identifier immediately followed by a ParenthesisChain.
// Returns the declarator name, its rendered parameter signature, the
// rendered return-type text preceding it, and whether one was found.
func scanFunctionSignature(chain *tokenchain.Chain) (token.Token, string, string, bool) {
	tokens := chain.Tokens()
	for i, t := range tokens {
		if t.Type != token.ParenthesisChain || i == 0 {
			continue
		}
		nameTok := tokens[i-1]
		if nameTok.Type != token.Identifier {
			continue
		}
		typeName := renderTokens(tokens[:i-1])
		sig := renderToken(t)
		return nameTok, sig, typeName, true
	}
	return token.Token{}, "", "", false
}

// analyzeOtherStatement implements §4.6: the statement classifier for
// everything that isn't one of the specialized declaration kinds.
func (s *State) analyzeOtherStatement(chain *tokenchain.Chain) bool {
	tokens := chain.Tokens()
	if len(tokens) == 0 {
		return true
	}
	first := tokens[0]
	if first.Type != token.Identifier && first.Type != token.Keyword {
		return false
	}
	if s.keywords.has(seenReturn) {
		return true
	}

	cannotBe := s.scope.CurrentKind() == scope.KindFunction
	if cannotBe {
		s.extractVariableDeclarations(chain)
		return true
	}

	mustBe := s.keywords.has(seenInline) || s.keywords.has(seenExplicit) ||
		s.keywords.has(seenOperator) || s.keywords.has(seenVirtual)

	nameTok, sig, typeName, found := scanFunctionSignature(chain)
	if found {
		ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), tagsink.KindPrototype, tagsink.Position{File: s.file, Line: nameTok.Line})
		ip.Record.FileScope = s.fileScope
		ip.Record.Signature = sig
		if typeName != "" {
			ip.Record.Type = tagsink.TypeRef{Name: typeName}
		}
		if s.scope.InsideClass() {
			ip.Record.Access = s.scope.CurrentAccess().String()
		}
		ip.Record.IsStatic = s.keywords.has(seenStatic)
		ip.Record.IsVirtual = s.keywords.has(seenVirtual)
		ip.Record.IsInline = s.keywords.has(seenInline)
		s.attachPendingDoc(ip)
		s.sink.Commit(ip)
		return true
	}

	if mustBe {
		return true // confidently a prototype, but the scanner found none: bail silently
	}

	s.extractVariableDeclarations(chain)
	return true
}
