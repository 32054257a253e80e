package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// fullDeclarationTrailer implements §4.5: interpret what follows a
// class/struct/union/enum body's closing brace, up to `;`/EOF.
func (s *State) fullDeclarationTrailer(wasTypedef bool, kind tagsink.Kind, typeName string) bool {
	chain := tokenchain.New()
	defer chain.Destroy()

	if !s.parseUpToOneOf(chain, token.EOF|token.Semicolon) {
		return false
	}

	last, _ := chain.TailToken()
	if last.Type == token.EOF {
		return true // tolerated
	}

	if chain.Len() < 2 {
		return true // nothing interesting, e.g. "};"
	}

	if wasTypedef {
		chain.DestroyLast() // drop the trailing ';'
		nameTok, ok := chain.TailToken()
		if ok && nameTok.Type == token.Identifier {
			ip := s.sink.Begin(s.scope.FullName(nameTok.Lexeme), tagsink.KindTypedef, tagsink.Position{File: s.file, Line: nameTok.Line})
			ip.Record.FileScope = s.fileScope
			ip.Record.Type = tagsink.TypeRef{Category: kind.String(), Name: typeName}
			s.attachPendingDoc(ip)
			s.sink.Commit(ip)
		}
		return true
	}

	// Synthesize "<kind> <typeName>" at the head and feed the whole
	// chain into the variable extractor, so "} instance, *p;" is seen as
	// if it had been written "struct TypeName instance, *p;".
	combined := tokenchain.New()
	combined.Append(token.Token{Type: token.Keyword, KeywordID: keywordForKind(kind), Lexeme: kind.String(), FollowedBySpace: true})
	combined.Append(token.Token{Type: token.Identifier, Lexeme: typeName, FollowedBySpace: true})
	for _, t := range chain.Tokens() {
		combined.Append(t)
	}
	s.extractVariableDeclarations(combined)
	return true
}

func keywordForKind(kind tagsink.Kind) token.Keyword {
	switch kind {
	case tagsink.KindStruct:
		return token.KeywordStruct
	case tagsink.KindUnion:
		return token.KeywordUnion
	case tagsink.KindEnum:
		return token.KeywordEnum
	default:
		return token.KeywordClass
	}
}
