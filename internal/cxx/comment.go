package cxx

import (
	"strings"

	"github.com/kestrel-tags/tagforge/internal/lexer"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

// docProvider is implemented by a LexerSource that also captures
// Doxygen comments. State only requires LexerSource; a type assertion
// recovers this richer capability when the concrete lexer offers it.
type docProvider interface {
	PendingDoc() *lexer.Doc
}

// attachPendingDoc finalizes an in-progress tag before it is committed:
// fills in its scope fields from current parser state, and, if a
// Doxygen comment was captured immediately before this declaration,
// parses and attaches it.
func (s *State) attachPendingDoc(ip *tagsink.InProgress) {
	if ip == nil {
		return
	}
	ip.Record.Scope = s.scope.FullName("")
	ip.Record.Scope = strings.TrimSuffix(ip.Record.Scope, "::")
	ip.Record.ScopeKind = s.scope.CurrentKind().String()

	if s.templateChain != nil && s.templateChain.Len() > 2 {
		ip.Record.IsTemplate = true
		ip.Record.TemplateParams = templateParamStrings(s.templateChain)
	}

	dp, ok := s.lex.(docProvider)
	if !ok {
		return
	}
	raw := dp.PendingDoc()
	if raw == nil || raw.Raw == "" {
		return
	}
	ip.Record.Doc = parseDoc(raw.Raw)
}

// parseDoc parses a raw Doxygen comment block (with its /** */, ///, or
// //! markers still attached) into structured fields. Tag lines start
// with @ or \; everything before the first tag is the brief/detailed
// description.
func parseDoc(raw string) *tagsink.Doc {
	doc := &tagsink.Doc{
		Raw:        raw,
		Params:     make(map[string]string),
		CustomTags: make(map[string]string),
	}

	lines := strings.Split(raw, "\n")
	var clean []string
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if i == 0 {
			l = strings.TrimPrefix(l, "/**")
			l = strings.TrimPrefix(l, "/*!")
			l = strings.TrimPrefix(l, "///")
			l = strings.TrimPrefix(l, "//!")
		}
		if i == len(lines)-1 {
			l = strings.TrimSuffix(l, "*/")
		}
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimSpace(l)
		if l != "" {
			clean = append(clean, l)
		}
	}

	var tag string
	var content []string
	flush := func() {
		if tag != "" {
			setDocTag(doc, tag, strings.Join(content, " "))
		}
	}
	for _, line := range clean {
		if strings.HasPrefix(line, "@") || strings.HasPrefix(line, "\\") {
			flush()
			parts := strings.SplitN(line[1:], " ", 2)
			tag = parts[0]
			content = nil
			if len(parts) > 1 {
				content = append(content, parts[1])
			}
			continue
		}
		if tag == "" {
			if doc.Brief == "" {
				doc.Brief = line
			} else if doc.Detailed == "" {
				doc.Detailed = line
			} else {
				doc.Detailed += " " + line
			}
			continue
		}
		content = append(content, line)
	}
	flush()

	return doc
}

func setDocTag(doc *tagsink.Doc, tag, content string) {
	switch tag {
	case "brief", "short":
		doc.Brief = content
	case "details", "detailed", "long":
		doc.Detailed = content
	case "param", "tparam":
		parts := strings.SplitN(content, " ", 2)
		if len(parts) == 2 {
			doc.Params[parts[0]] = parts[1]
		}
	case "return", "returns":
		doc.Returns = content
	case "throw", "throws", "exception":
		doc.Throws = append(doc.Throws, content)
	case "since":
		doc.Since = content
	case "deprecated":
		doc.Deprecated = content
	case "see", "sa":
		doc.See = append(doc.See, content)
	default:
		doc.CustomTags[tag] = content
	}
}
