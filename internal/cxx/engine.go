package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/lexer"
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

// RescanReason is ParseFile's outward-facing result: either the file
// parsed to completion, or a first-pass failure that the host may retry
// with a different preprocessor configuration.
type RescanReason int

const (
	Done RescanReason = iota
	RescanFailed
)

// Engine owns the per-invocation parser state and reuses it across
// files, mirroring the original design's process-wide lifecycle (one
// init, many per-file resets, one cleanup) without actually sharing that
// state across concurrent Engines: each Engine is only ever driven by
// one goroutine at a time.
type Engine struct {
	state    *State
	scope    *scope.Stack
	sink     tagsink.Sink
	lang     Language
	firstRun bool
	macros   map[string]string
}

// NewEngine returns an Engine that commits tags to sink. Call
// InitializeC or InitializeCpp before the first ParseFile.
func NewEngine(sink tagsink.Sink) *Engine {
	return &Engine{scope: &scope.Stack{}, sink: sink, firstRun: true}
}

// InitializeC selects C dialect rules for subsequent parses.
func (e *Engine) InitializeC() { e.lang = LangC }

// InitializeCpp selects C++ dialect rules for subsequent parses.
func (e *Engine) InitializeCpp() { e.lang = LangCpp }

// SetMacros seeds every subsequent ParseFile's lexer with an object-like
// macro table, the equivalent of a host's -D command-line defines.
func (e *Engine) SetMacros(macros map[string]string) { e.macros = macros }

// ParseFile parses src as file (fileScope true unless file is a header)
// and returns whether the parse completed or bailed out on pass one,
// along with whatever diagnostics accumulated.
func (e *Engine) ParseFile(file, src string, fileScope bool) (RescanReason, *diag.Batch) {
	lx := lexer.New(src)
	_ = lx.Init(true)
	for name, value := range e.macros {
		lx.Define(name, value)
	}

	if e.firstRun {
		e.scope.Init()
		e.state = NewState(lx, e.scope, e.sink, file, fileScope, e.lang)
		e.firstRun = false
	} else {
		e.scope.Clear()
		e.state.Reset(lx, file, fileScope)
	}

	ok := e.state.parseBlock(false)
	lx.Terminate()

	if !ok {
		return RescanFailed, e.state.Diagnostics()
	}
	return Done, e.state.Diagnostics()
}

// Cleanup releases state on shutdown. The Engine must not be reused
// after this call.
func (e *Engine) Cleanup() {
	if e.state != nil {
		e.state.chain.Destroy()
		if e.state.templateChain != nil {
			e.state.templateChain.Destroy()
		}
	}
	e.scope.Done()
}
