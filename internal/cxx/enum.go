package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// parseEnum implements §4.3.
func (s *State) parseEnum() bool {
	wasTypedef := s.keywords.has(seenTypedef)

	if !s.parseUpToOneOf(s.chain, token.EOF|token.Semicolon|token.ParenthesisChain|token.OpeningBracket) {
		return false
	}

	last, _ := s.chain.TailToken()

	if last.Type == token.ParenthesisChain {
		// Probably a function declaration (e.g. "enum x func()"): finish
		// the statement and classify it as a prototype or variable
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

	ip := s.sink.Begin(fullName, tagsink.KindEnum, tagsink.Position{File: s.file, Line: nameTok.Line})
	ip.Record.FileScope = s.fileScope
	s.attachPendingDoc(ip)
	s.sink.Commit(ip)

	s.scope.Push(nameTok.Lexeme, scope.KindEnum)
	pushed++

	for {
		item := tokenchain.New()
		if !s.parseUpToOneOf(item, token.Comma|token.ClosingBracket|token.EOF) {
			item.Destroy()
			break
		}
		itemLast, _ := item.TailToken()
		if item.Len() > 1 {
			first, _ := item.At(0)
			if first.Type == token.Identifier {
				ip := s.sink.Begin(s.scope.FullName(first.Lexeme), tagsink.KindEnumerator, tagsink.Position{File: s.file, Line: first.Line})
				ip.Record.FileScope = s.fileScope
				s.sink.Commit(ip)
			}
		}
		item.Destroy()
		if itemLast.Type == token.ClosingBracket || itemLast.Type == token.EOF {
			break
		}
	}

	for i := 0; i < pushed; i++ {
		s.scope.Pop()
	}

	s.fullDeclarationTrailer(wasTypedef, tagsink.KindEnum, nameTok.Lexeme)
	s.newStatement()
	return true
}
