package cxx

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

func parseCpp(t *testing.T, src string) []tagsink.Record {
	t.Helper()
	c := tagsink.NewCollector()
	e := NewEngine(c)
	e.InitializeCpp()
	reason, batch := e.ParseFile("test.hpp", src, true)
	if reason != Done {
		t.Fatalf("ParseFile did not reach Done: %v", batch.Err())
	}
	e.Cleanup()
	return c.Records
}

func names(records []tagsink.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, fmt.Sprintf("%s:%s", r.Kind, r.Name))
	}
	return out
}

func TestNamespaceClassAndMembers(t *testing.T) {
	src := `namespace net {
class Socket {
public:
    Socket();
    int fd;
private:
    bool connected;
    void close();
};
}`
	records := parseCpp(t, src)
	snaps.MatchSnapshot(t, names(records))

	var socket, close_ *tagsink.Record
	for i := range records {
		switch records[i].Name {
		case "net::Socket":
			socket = &records[i]
		case "net::Socket::close":
			close_ = &records[i]
		}
	}
	if socket == nil {
		t.Fatal("expected a class tag for net::Socket")
	}
	if socket.Scope != "net" {
		t.Errorf("Socket scope = %q, want net", socket.Scope)
	}
	if close_ == nil {
		t.Fatal("expected a prototype tag for net::Socket::close")
	}
	if close_.Access != "private" {
		t.Errorf("close access = %q, want private", close_.Access)
	}
}

func TestEnumWithEnumerators(t *testing.T) {
	src := `enum Color { Red, Green, Blue = 5 };`
	records := parseCpp(t, src)

	var kinds []string
	for _, r := range records {
		kinds = append(kinds, fmt.Sprintf("%s:%s", r.Kind, r.Name))
	}
	want := []string{
		"enum:Color",
		"enumerator:Color::Red",
		"enumerator:Color::Green",
		"enumerator:Color::Blue",
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestTypedefStructForm(t *testing.T) {
	src := `typedef struct Point { int x; int y; } Point;`
	records := parseCpp(t, src)

	var sawStruct, sawTypedef bool
	for _, r := range records {
		if r.Kind == tagsink.KindStruct && r.Name == "Point" {
			sawStruct = true
		}
		if r.Kind == tagsink.KindTypedef && r.Name == "Point" {
			sawTypedef = true
		}
	}
	if !sawStruct {
		t.Errorf("expected a struct tag for Point, got %v", names(records))
	}
	if !sawTypedef {
		t.Errorf("expected a typedef tag for Point, got %v", names(records))
	}
}

func TestFunctionPrototypeWithDoxygenComment(t *testing.T) {
	src := `/**
 * @brief Opens the connection.
 * @param timeout how long to wait, in milliseconds
 * @return true on success
 */
bool connect(int timeout);`
	records := parseCpp(t, src)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(records), names(records))
	}
	r := records[0]
	if r.Kind != tagsink.KindPrototype || r.Name != "connect" {
		t.Fatalf("record = %+v", r)
	}
	if r.Doc == nil {
		t.Fatal("expected a Doxygen doc to be attached")
	}
	if r.Doc.Brief != "Opens the connection." {
		t.Errorf("brief = %q", r.Doc.Brief)
	}
	if r.Doc.Returns != "true on success" {
		t.Errorf("returns = %q", r.Doc.Returns)
	}
	if r.Doc.Params["timeout"] != "how long to wait, in milliseconds" {
		t.Errorf("param timeout = %q", r.Doc.Params["timeout"])
	}
}

func TestTemplateClassParamsAssociateWithNextTag(t *testing.T) {
	src := `template<typename T, int N>
class Buffer {
    T data;
};`
	records := parseCpp(t, src)
	var buf *tagsink.Record
	for i := range records {
		if records[i].Name == "Buffer" {
			buf = &records[i]
		}
	}
	if buf == nil {
		t.Fatalf("expected a class tag for Buffer, got %v", names(records))
	}
	if !buf.IsTemplate {
		t.Error("expected Buffer to be marked as a template")
	}
	if len(buf.TemplateParams) != 2 || buf.TemplateParams[0] != "typename T" || buf.TemplateParams[1] != "int N" {
		t.Errorf("template params = %v", buf.TemplateParams)
	}
}

func TestPreprocessorMacroAndIncludeForwarded(t *testing.T) {
	src := `#include <vector>
#define MAX_SIZE 128
int cap = MAX_SIZE;`
	records := parseCpp(t, src)

	var inc, macro *tagsink.Record
	for i := range records {
		if records[i].Kind == tagsink.KindInclude {
			inc = &records[i]
		}
		if records[i].Kind == tagsink.KindMacro {
			macro = &records[i]
		}
	}
	if inc == nil || inc.Name != "vector" {
		t.Errorf("include tag = %+v", inc)
	}
	if macro == nil || macro.Name != "MAX_SIZE" || macro.Type.Name != "128" {
		t.Errorf("macro tag = %+v", macro)
	}
}

func TestUsingAliasAndDeclaration(t *testing.T) {
	src := `using Handle = int;
using std::vector;`
	records := parseCpp(t, src)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(records), names(records))
	}
	if records[0].Kind != tagsink.KindUsing || records[0].Name != "Handle" || records[0].Type.Name != "int" {
		t.Errorf("alias record = %+v", records[0])
	}
	if records[1].Kind != tagsink.KindUsing || records[1].Name != "vector" {
		t.Errorf("using-declaration record = %+v", records[1])
	}
}

func TestIfStatementBodyDoesNotLeakScope(t *testing.T) {
	src := `void run() {
    if (ready) {
        int x = 1;
    }
    int y = 2;
}`
	records := parseCpp(t, src)
	for _, r := range records {
		if r.Name == "x" || r.Name == "y" {
			t.Errorf("locals inside a function body should not be tagged, got %q", r.Name)
		}
	}
}

func TestVariableDeclarationList(t *testing.T) {
	src := `int width, height, depth;`
	records := parseCpp(t, src)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %v", len(records), names(records))
	}
	for _, r := range records {
		if r.Kind != tagsink.KindVariable || r.Type.Name != "int" {
			t.Errorf("record = %+v, want kind variable type int", r)
		}
	}
}

// A struct/union/enum-typed return type looks like a tag header up to the
// parenthesized parameter list; the header scanner must hand the chain to
// analyzeOtherStatement instead of discarding it, or the prototype (and
// every statement after it) is lost.
func TestQualifiedReturnTypePrototypeIsNotDropped(t *testing.T) {
	src := `struct S *getS();
int after = 1;`
	records := parseCpp(t, src)

	var proto, after *tagsink.Record
	for i := range records {
		switch records[i].Name {
		case "getS":
			proto = &records[i]
		case "after":
			after = &records[i]
		}
	}
	if proto == nil || proto.Kind != tagsink.KindPrototype {
		t.Fatalf("expected a prototype tag for getS, got %v", names(records))
	}
	if after == nil {
		t.Fatalf("expected a variable tag for after (statement following the prototype), got %v", names(records))
	}
}

func TestEnumTypedReturnPrototypeIsNotDropped(t *testing.T) {
	src := `enum Color next();`
	records := parseCpp(t, src)
	if len(records) != 1 || records[0].Kind != tagsink.KindPrototype || records[0].Name != "next" {
		t.Fatalf("got %v, want a single prototype tag for next", names(records))
	}
}

// A bare top-level relational expression is not a declaration, but it must
// not abort the rest of the file: '>' is only a closer inside a condensed
// '<...>' template argument list, so the condenser reports it as an
// unmatched closer here. The block loop must resynchronize to the next
// ';' and keep parsing.
func TestRelationalExpressionDoesNotAbortFile(t *testing.T) {
	src := `bool b = a > c;
int after = 1;`
	records := parseCpp(t, src)

	var after *tagsink.Record
	for i := range records {
		if records[i].Name == "after" {
			after = &records[i]
		}
	}
	if after == nil {
		t.Fatalf("expected parsing to continue past the malformed statement, got %v", names(records))
	}
}

func TestSyntaxErrorInsideClassBodyDoesNotAbortFile(t *testing.T) {
	src := `class Widget {
    bool ok = a > c;
    int after;
};`
	records := parseCpp(t, src)

	var widget, after *tagsink.Record
	for i := range records {
		switch records[i].Name {
		case "Widget":
			widget = &records[i]
		case "Widget::after":
			after = &records[i]
		}
	}
	if widget == nil {
		t.Fatalf("expected a class tag for Widget, got %v", names(records))
	}
	if after == nil {
		t.Fatalf("expected the member following the malformed statement to still be tagged, got %v", names(records))
	}
}
