// Package tagsink defines the shape of an emitted tag and the interface
// the parser core uses to emit one, independent of the C/C++ and Swift
// front ends that produce them.
package tagsink

import "fmt"

// Kind is the set of tag kinds either front end can emit. The C/C++ and
// Swift parsers share one enum so a caller walking results from both
// never needs a type switch on which language produced a record.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindStruct
	KindUnion
	KindEnum
	KindEnumerator
	KindTypedef
	KindUsing
	KindNamespace
	KindFunction
	KindPrototype
	KindMember
	KindVariable
	KindParameter
	KindMacro
	KindInclude
	KindConstant
	KindTypeAlias
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindEnumerator:
		return "enumerator"
	case KindTypedef:
		return "typedef"
	case KindUsing:
		return "using"
	case KindNamespace:
		return "namespace"
	case KindFunction:
		return "function"
	case KindPrototype:
		return "prototype"
	case KindMember:
		return "member"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindMacro:
		return "macro"
	case KindInclude:
		return "include"
	case KindConstant:
		return "constant"
	case KindTypeAlias:
		return "typealias"
	default:
		return "unknown"
	}
}

// Position locates a tag in its source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// TypeRef describes the declared type of a variable, member, or
// parameter, and the return type of a function. Category is a loose
// hint rather than a full type system: the C/C++ declaration trailer
// sets it to the tag kind name ("struct", "enum", ...), the Swift parser
// sets it to "typename", and it is otherwise empty. The extractors fill
// in what they can read off the token stream without attempting real
// type resolution.
type TypeRef struct {
	Name     string
	Category string
}

// Doc carries the Doxygen documentation block, if any, immediately
// preceding a tag. Supplements the distilled spec: the teacher's entire
// purpose is documentation association, so it is carried forward rather
// than dropped.
type Doc struct {
	Raw        string
	Brief      string
	Detailed   string
	Params     map[string]string
	Returns    string
	Throws     []string
	Since      string
	Deprecated string
	See        []string
	CustomTags map[string]string
}

// Record is one emitted tag.
type Record struct {
	Name        string
	Kind        Kind
	Pos         Position
	Scope       string
	ScopeKind   string
	Access      string
	Type        TypeRef
	Inheritance []string
	FileScope   bool
	IsStatic    bool
	IsConst     bool
	IsVirtual   bool
	IsPure      bool
	IsInline    bool
	IsTemplate  bool
	TemplateParams []string
	Signature   string
	Doc         *Doc
}

// InProgress is a tag that has been opened (its name and anchor position
// are known) but not yet committed: the extractor that began it may
// still attach inheritance, a signature, or a trailing Doc before handing
// it to Sink.Commit.
type InProgress struct {
	Record Record
}

// Sink receives tags as the parser core discovers them. Begin and Commit
// are split so an extractor can accumulate fields (inheritance clauses,
// a signature under construction) on the in-progress record before it is
// final.
type Sink interface {
	Begin(name string, kind Kind, pos Position) *InProgress
	Commit(ip *InProgress)
}

// Collector is the in-memory Sink used by tests and by callers that want
// the full result set rather than a streamed ctags file. Records are
// retained in commit order, which is lexical source order for a single
// file.
type Collector struct {
	Records []Record
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Begin(name string, kind Kind, pos Position) *InProgress {
	return &InProgress{Record: Record{Name: name, Kind: kind, Pos: pos}}
}

func (c *Collector) Commit(ip *InProgress) {
	if ip == nil {
		return
	}
	c.Records = append(c.Records, ip.Record)
}
