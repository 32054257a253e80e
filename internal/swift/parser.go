package swift

import (
	"strings"

	"github.com/kestrel-tags/tagforge/internal/scope"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

const (
	tokColon    = TokenType(':')
	tokComma    = TokenType(',')
	tokEquals   = TokenType('=')
	tokLParen   = TokenType('(')
	tokRParen   = TokenType(')')
	tokLBrace   = TokenType('{')
	tokRBrace   = TokenType('}')
	tokQuestion = TokenType('?')
	tokBang     = TokenType('!')
)

// Parser walks a pre-tokenized Swift source with classic recursive
// descent, pushing/popping internal/scope frames to track nesting instead
// of condensing tokens into subchains the way the C/C++ core does.
type Parser struct {
	lex   *Lexer
	scope *scope.Stack
	sink  tagsink.Sink
	file  string
	cur   Token
}

// NewParser returns a Parser positioned at the first token of src's
// underlying lexer.
func NewParser(lex *Lexer, s *scope.Stack, sink tagsink.Sink, file string) *Parser {
	p := &Parser{lex: lex, scope: s, sink: sink, file: file}
	p.cur = p.lex.Next()
	return p
}

func (p *Parser) advance() Token {
	p.cur = p.lex.Next()
	return p.cur
}

func (p *Parser) pos(line int) tagsink.Position {
	return tagsink.Position{File: p.file, Line: line}
}

// pendingScope is the tag that becomes the parent scope if the very next
// token turns out to be an opening brace — mirrors the single corkIndex
// local variable threaded through the original's enterScope.
type pendingScope struct {
	name string
	kind scope.Kind
}

// ParseScope walks one nesting level: the whole file when root is true, a
// single `{ ... }` body otherwise (the caller has already consumed the
// opening brace).
func (p *Parser) ParseScope(root bool) {
	var pending *pendingScope

	for p.cur.Type != TokenEOF && (root || p.cur.Type != tokRBrace) {
		readNext := true

		if p.cur.Type == TokenKeyword && p.cur.Keyword == KeywordIf {
			// "if let x = ..." binds no tag of its own; skip past `if` so
			// the let/var branch below still fires.
			p.advance()
			pending = nil
		}

		switch {
		case p.cur.Type == TokenKeyword && (p.cur.Keyword == KeywordLet || p.cur.Keyword == KeywordVar):
			readNext = p.parseVariable()
			pending = nil

		case p.cur.Type == TokenKeyword && (p.cur.Keyword == KeywordFunc || p.cur.Keyword == KeywordInit || p.cur.Keyword == KeywordDeinit):
			pending, readNext = p.parseFunction()

		case p.cur.Type == TokenKeyword && p.cur.Keyword == KeywordClass:
			pending = p.parseClass()
			readNext = false

		case p.cur.Type == TokenKeyword && p.cur.Keyword == KeywordTypealias:
			readNext = p.parseTypealias()
			pending = nil

		case p.cur.Type == tokLBrace:
			if pending != nil {
				p.scope.Push(pending.name, pending.kind)
			} else {
				p.scope.Push("", scope.KindNone)
			}
			p.advance()
			p.ParseScope(false)
			p.scope.Pop()
			pending = nil
			readNext = p.cur.Type != TokenEOF
		}

		if readNext {
			p.advance()
		}
	}
}

// parseClass reads "class Name : Base1, Base2" and emits a class tag,
// leaving cur on whatever follows the header (typically `{`, left for
// ParseScope's generic brace case to push the class as parent scope).
func (p *Parser) parseClass() *pendingScope {
	p.advance() // consume 'class'
	if p.cur.Type != TokenIdentifier {
		return nil
	}
	line := p.cur.Line
	name := p.cur.Lexeme
	p.advance()

	var inheritance []string
	if p.cur.Type == tokColon {
		for {
			p.advance()
			if p.cur.Type == TokenIdentifier || (p.cur.Type == TokenKeyword && p.cur.Keyword == KeywordClass) {
				inheritance = append(inheritance, p.cur.Lexeme)
			} else {
				break
			}
			p.advance()
			if p.cur.Type != tokComma {
				break
			}
		}
	}

	ip := p.sink.Begin(p.scope.FullName(name), tagsink.KindClass, p.pos(line))
	ip.Record.Inheritance = inheritance
	p.sink.Commit(ip)

	return &pendingScope{name: name, kind: scope.KindClass}
}

// parseFunction reads "func name(params) -> RetType", or a bare "init"/
// "deinit" with an optional parameter list, and emits a function tag.
func (p *Parser) parseFunction() (*pendingScope, bool) {
	kw := p.cur.Keyword
	if kw == KeywordFunc {
		p.advance()
		if p.cur.Type != TokenIdentifier {
			return nil, false
		}
	}
	line := p.cur.Line
	name := p.cur.Lexeme
	p.advance()

	sig, funcLine := "", line
	if p.cur.Type == tokLParen {
		sig = p.parseParameterList(funcLine)
	}

	var retType string
	if p.cur.Type == TokenRightArrow {
		p.advance()
		retType, _ = p.readType()
	}

	ip := p.sink.Begin(p.scope.FullName(name), tagsink.KindFunction, p.pos(line))
	ip.Record.Signature = sig
	if retType != "" {
		ip.Record.Type = tagsink.TypeRef{Name: retType, Category: "typename"}
	}
	p.sink.Commit(ip)

	return &pendingScope{name: name, kind: scope.KindFunction}, false
}

// parseParameterList parses "(label? name: Type = default, ...)",
// emitting a Parameter tag per entry (a feature the original left
// disabled by default) and returning the rendered signature text.
func (p *Parser) parseParameterList(line int) string {
	var sig strings.Builder
	sig.WriteByte('(')
	p.advance()

	first := true
	for p.cur.Type != tokRParen && p.cur.Type != TokenEOF {
		if !first {
			sig.WriteString(", ")
		}
		first = false

		var labels []string
		for p.cur.Type == TokenIdentifier {
			labels = append(labels, p.cur.Lexeme)
			p.advance()
			if p.cur.Type == tokColon {
				break
			}
		}
		name := ""
		if n := len(labels); n > 0 {
			name = labels[n-1]
			sig.WriteString(strings.Join(labels, " "))
		}

		var typ string
		if p.cur.Type == tokColon {
			p.advance()
			typ, _ = p.readType()
			sig.WriteString(": ")
			sig.WriteString(typ)
		}

		if name != "" {
			ip := p.sink.Begin(name, tagsink.KindParameter, p.pos(line))
			if typ != "" {
				ip.Record.Type = tagsink.TypeRef{Name: typ, Category: "typename"}
			}
			p.sink.Commit(ip)
		}

		if p.cur.Type == tokEquals {
			// skip the default-value expression up to the next top-level
			// comma or the closing paren; nested parens are balanced but
			// brackets are not, matching the original's Array/Dictionary
			// literal type-inference gap (readType's own FIXME).
			p.advance()
			depth := 0
			for p.cur.Type != TokenEOF {
				if p.cur.Type == tokLParen {
					depth++
				} else if p.cur.Type == tokRParen {
					if depth == 0 {
						break
					}
					depth--
				} else if p.cur.Type == tokComma && depth == 0 {
					break
				}
				p.advance()
			}
		}

		if p.cur.Type != tokComma {
			break
		}
		p.advance()
	}

	if p.cur.Type == tokRParen {
		sig.WriteByte(')')
		p.advance()
	}
	return sig.String()
}

// parseVariable reads "let/var name: Type" (or "= expr", untyped), emits
// a constant/variable/member tag, and reports whether ParseScope should
// advance past what it left as cur.
func (p *Parser) parseVariable() bool {
	kind := tagsink.KindVariable
	if p.cur.Keyword == KeywordLet {
		kind = tagsink.KindConstant
	}
	p.advance() // consume let/var
	if p.cur.Type != TokenIdentifier {
		return false
	}
	line := p.cur.Line
	name := p.cur.Lexeme
	p.advance()

	var typ string
	readNext := true
	if p.cur.Type == tokColon {
		p.advance()
		typ, _ = p.readType()
		readNext = false
	} else {
		readNext = false
	}

	// Plain variables directly inside a class become members. Functions
	// keep their function kind and constants are never reclassified,
	// matching the original (only K_VARIABLE is).
	if kind == tagsink.KindVariable && p.scope.CurrentKind() == scope.KindClass {
		kind = tagsink.KindMember
	}

	ip := p.sink.Begin(p.scope.FullName(name), kind, p.pos(line))
	if typ != "" {
		ip.Record.Type = tagsink.TypeRef{Name: typ, Category: "typename"}
	}
	p.sink.Commit(ip)

	return readNext
}

// parseTypealias reads "typealias Name = Type" and emits a typealias tag.
func (p *Parser) parseTypealias() bool {
	p.advance() // consume 'typealias'
	if p.cur.Type != TokenIdentifier {
		return false
	}
	line := p.cur.Line
	name := p.cur.Lexeme
	p.advance()

	var typ string
	if p.cur.Type == tokEquals {
		p.advance()
		typ, _ = p.readType()
	}

	ip := p.sink.Begin(p.scope.FullName(name), tagsink.KindTypeAlias, p.pos(line))
	if typ != "" {
		ip.Record.Type = tagsink.TypeRef{Name: typ, Category: "typename"}
	}
	p.sink.Commit(ip)

	return false
}

// readType reads a type annotation: a parenthesized tuple (optionally
// "-> ReturnType" for a function type) or a plain identifier, with an
// optional trailing `?`/`!`. Array ("[T]") and dictionary ("[K: V]")
// literal type syntax is not recognized, matching the original's own
// noted gap.
func (p *Parser) readType() (string, bool) {
	var typ string
	switch {
	case p.cur.Type == tokLParen:
		typ = p.renderTupleType()
		if p.cur.Type == TokenRightArrow {
			p.advance()
			sub, _ := p.readType()
			typ += " -> " + sub
		}
	case p.cur.Type == TokenIdentifier:
		typ = p.cur.Lexeme
		p.advance()
	default:
		return "", false
	}

	if p.cur.Type == tokQuestion || p.cur.Type == tokBang {
		typ += string(rune(p.cur.Type))
		p.advance()
	}
	return typ, true
}

// renderTupleType renders a parenthesized tuple type such as "(Int,
// String)" as plain text, with no tag side effects (unlike
// parseParameterList, which this otherwise resembles).
func (p *Parser) renderTupleType() string {
	var b strings.Builder
	b.WriteByte('(')
	p.advance()
	depth := 0
	first := true
	for p.cur.Type != TokenEOF {
		if p.cur.Type == tokRParen && depth == 0 {
			break
		}
		if p.cur.Type == tokLParen {
			depth++
		} else if p.cur.Type == tokRParen {
			depth--
		}
		if p.cur.Type == tokComma && depth == 0 {
			b.WriteString(", ")
			first = true
			p.advance()
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(p.cur.Lexeme)
		p.advance()
	}
	if p.cur.Type == tokRParen {
		b.WriteByte(')')
		p.advance()
	}
	return b.String()
}
