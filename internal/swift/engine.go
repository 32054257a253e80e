package swift

import (
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

// Engine parses Swift source and emits tags to a sink. Unlike cxx.Engine
// there is no token-chain condensation and no rescan pass: Swift source is
// walked once with plain recursive descent, so ParseFile cannot fail in
// the way cxx.Engine.ParseFile can — malformed input just yields fewer
// tags, the same tolerance the original parser shows.
type Engine struct {
	sink  tagsink.Sink
	scope *scope.Stack
}

// NewEngine returns an Engine that commits tags to sink.
func NewEngine(sink tagsink.Sink) *Engine {
	return &Engine{sink: sink, scope: &scope.Stack{}}
}

// ParseFile parses src as file, walking it top to bottom.
func (e *Engine) ParseFile(file, src string) {
	e.scope.Init()
	lex := NewLexer(src)
	p := NewParser(lex, e.scope, e.sink, file)
	p.ParseScope(true)
}

// Cleanup releases state on shutdown. The Engine must not be reused after
// this call.
func (e *Engine) Cleanup() {
	e.scope.Done()
}
