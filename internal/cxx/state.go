// Package cxx implements the C/C++ tag-extraction core: a token-chain
// condensation parser that recognizes enough C++ declaration syntax to
// emit accurate tags without full semantic analysis.
package cxx

import (
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/token"
	"github.com/kestrel-tags/tagforge/internal/tokenchain"
)

// Language selects C or C++ dialect rules (currently only the lambda
// heuristic differs; both dialects share one keyword table).
type Language int

const (
	LangCpp Language = iota
	LangC
)

// LexerSource is the token source the core consumes. Implemented by
// internal/lexer.Lexer; declared here as a narrow interface so cxx never
// imports a concrete lexer type.
type LexerSource interface {
	ReadNextToken() (token.Token, bool)
	EndStatement()
}

// keywordFlag is a per-statement bit set recording which modifier
// keywords have been seen since the last newStatement call.
type keywordFlag uint32

const (
	seenTypedef keywordFlag = 1 << iota
	seenReturn
	seenInline
	seenExplicit
	seenOperator
	seenVirtual
	seenStatic
	seenExtern
	seenUsing
	seenTemplate
	seenConst
	seenConstexpr
	seenFriend
	seenMutable
)

func (f keywordFlag) has(bit keywordFlag) bool { return f&bit != 0 }

// State is the per-parse mutable state threaded through every helper.
// Unlike the original design's process-wide singleton, State is created
// fresh per file (or reused via reset) and never shared between
// concurrently running parses.
type State struct {
	lex   LexerSource
	scope *scope.Stack
	sink  tagsink.Sink

	file      string
	fileScope bool // true iff the input is not a header
	lang      Language

	chain         *tokenchain.Chain
	templateChain *tokenchain.Chain
	cur           token.Token
	curOK         bool

	keywords keywordFlag

	parsingTemplateAngleBrackets          bool
	parsingClassStructOrUnionDeclaration  bool

	diagnostics diag.Batch
}

// NewState constructs a State bound to lex, scope stack s and sink, for
// file named file (fileScope true when the file is a source file rather
// than a header).
func NewState(lex LexerSource, s *scope.Stack, sink tagsink.Sink, file string, fileScope bool, lang Language) *State {
	return &State{
		lex:       lex,
		scope:     s,
		sink:      sink,
		file:      file,
		fileScope: fileScope,
		lang:      lang,
		chain:     tokenchain.New(),
	}
}

// Reset clears per-file mutable state so the same State can be reused
// across files without reallocating the scope stack.
func (s *State) Reset(lex LexerSource, file string, fileScope bool) {
	if s.chain != nil {
		s.chain.Destroy()
	}
	if s.templateChain != nil {
		s.templateChain.Destroy()
		s.templateChain = nil
	}
	s.lex = lex
	s.file = file
	s.fileScope = fileScope
	s.chain = tokenchain.New()
	s.cur = token.Token{}
	s.curOK = false
	s.keywords = 0
	s.parsingTemplateAngleBrackets = false
	s.parsingClassStructOrUnionDeclaration = false
	s.scope.Clear()
}

// newStatement clears the current chain, destroys any open template
// chain, zeroes keyword state, and signals the lexer that a statement
// boundary was reached.
func (s *State) newStatement() {
	s.chain.Destroy()
	s.chain = tokenchain.New()
	if s.templateChain != nil {
		s.templateChain.Destroy()
		s.templateChain = nil
	}
	s.keywords = 0
	s.lex.EndStatement()
}

// advance pulls the next token from the lexer into s.cur, appending
// nothing by itself (callers append to whichever chain they're building).
func (s *State) advance() (token.Token, bool) {
	tok, ok := s.lex.ReadNextToken()
	s.drainLexerEvents()
	s.cur = tok
	s.curOK = ok
	return tok, ok
}

func (s *State) pos(line int) diag.Position {
	return diag.Position{File: s.file, Line: line}
}

func (s *State) fail(line int, code diag.Code, format string, args ...interface{}) bool {
	s.diagnostics.Add(diag.Errorf(s.pos(line), code, format, args...))
	return false
}

// Diagnostics returns the batch of diagnostics accumulated so far.
func (s *State) Diagnostics() *diag.Batch { return &s.diagnostics }
