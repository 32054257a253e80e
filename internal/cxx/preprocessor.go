package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/lexer"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

// eventProvider is implemented by a LexerSource that also records
// preprocessor occurrences worth forwarding to the tag sink. Checked
// after every token read so a #define or #include encountered while
// skipping to the next token is committed in its proper lexical place.
type eventProvider interface {
	DrainEvents() []lexer.Event
}

func (s *State) drainLexerEvents() {
	ep, ok := s.lex.(eventProvider)
	if !ok {
		return
	}
	for _, ev := range ep.DrainEvents() {
		if ev.Macro {
			ip := s.sink.Begin(ev.Name, tagsink.KindMacro, tagsink.Position{File: s.file, Line: ev.Line})
			ip.Record.FileScope = s.fileScope
			if ev.Value != "" {
				ip.Record.Type = tagsink.TypeRef{Name: ev.Value}
			}
			s.sink.Commit(ip)
			continue
		}
		ip := s.sink.Begin(ev.Name, tagsink.KindInclude, tagsink.Position{File: s.file, Line: ev.Line})
		ip.Record.FileScope = s.fileScope
		s.sink.Commit(ip)
	}
}
