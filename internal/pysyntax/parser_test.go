package pysyntax

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

// sexpr renders a tree as a compact S-expression for shape assertions.
// Leaves render as their text, composites as "(tag children…)".
func sexpr(n Node) string {
	switch v := n.(type) {
	case *Leaf:
		return v.Text
	case *Composite:
		parts := make([]string, 0, len(v.Children)+1)
		parts = append(parts, v.Tag.String())
		for _, c := range v.Children {
			parts = append(parts, sexpr(c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("?%T", n)
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "call trailer with sequence",
			src:  "f(a, b)",
			want: "(file_input (simple_stmt f (trailer ( (arglist a , b) ))))",
		},
		{
			name: "single argument collapses",
			src:  "f(a)",
			want: "(file_input (simple_stmt f (trailer ( a ))))",
		},
		{
			name: "empty call",
			src:  "f()",
			want: "(file_input (simple_stmt f (trailer ( ))))",
		},
		{
			name: "def keeps a parameters node even when empty",
			src:  "def f():",
			want: "(file_input (simple_stmt def f (parameters ( (arglist) )) :))",
		},
		{
			name: "variadic markers are direct sequence elements",
			src:  "def f(*args, **kw):",
			want: "(file_input (simple_stmt def f (parameters ( (arglist * args , ** kw) )) :))",
		},
		{
			name: "list literal",
			src:  "[1, 2]",
			want: "(file_input (simple_stmt (atom [ (arglist 1 , 2) ])))",
		},
		{
			name: "single element literal collapses",
			src:  "[1]",
			want: "(file_input (simple_stmt (atom [ 1 ])))",
		},
		{
			name: "empty literal has two children",
			src:  "[]",
			want: "(file_input (simple_stmt (atom [ ])))",
		},
		{
			name: "dict pair is one element",
			src:  "{k: v}",
			want: "(file_input (simple_stmt (atom { (expr k : v) })))",
		},
		{
			name: "comprehension clause",
			src:  "[x for x in y]",
			want: "(file_input (simple_stmt (atom [ (arglist x (comp_for for x in y)) ])))",
		},
		{
			name: "dict comprehension",
			src:  "{k: v for k, v in items}",
			want: "(file_input (simple_stmt (atom { (arglist (expr k : v) (comp_for for k , v in items)) })))",
		},
		{
			name: "attribute access then call",
			src:  "x.y(z)",
			want: "(file_input (simple_stmt x (trailer . y) (trailer ( z ))))",
		},
		{
			name: "subscript after name is a trailer",
			src:  "x[0]",
			want: "(file_input (simple_stmt x (trailer [ 0 ])))",
		},
		{
			name: "bracket after keyword opens an atom",
			src:  "return [0]",
			want: "(file_input (simple_stmt return (atom [ 0 ])))",
		},
		{
			name: "literal as the sole call argument stays an atom",
			src:  "f([1, 2])",
			want: "(file_input (simple_stmt f (trailer ( (atom [ (arglist 1 , 2) ]) ))))",
		},
		{
			name: "class bases are untagged",
			src:  "class C(Base):",
			want: "(file_input (simple_stmt class C (expr ( Base )) :))",
		},
		{
			name: "nested literals",
			src:  "f(a, [1, 2], b)",
			want: "(file_input (simple_stmt f (trailer ( (arglist a , (atom [ (arglist 1 , 2) ]) , b) ))))",
		},
		{
			name: "two statements",
			src:  "x = 1\ny = 2",
			want: "(file_input (simple_stmt x = 1) (simple_stmt y = 2))",
		},
		{
			name: "genexpr argument",
			src:  "f(x for x in y)",
			want: "(file_input (simple_stmt f (trailer ( (arglist x (comp_for for x in y)) ))))",
		},
		{
			name: "star as binary operator stays inside the element",
			src:  "f(a * b, c)",
			want: "(file_input (simple_stmt f (trailer ( (arglist (expr a * b) , c) ))))",
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := p.Parse(tt.src)
			if err != nil {
				t.Fatalf("parse: %s", err)
			}

			if got := sexpr(tree); got != tt.want {
				t.Errorf("shape mismatch:\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParsePositions(t *testing.T) {
	p := NewParser()

	tree, err := p.Parse("f(a,\n    b)")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	want := &Composite{Tag: TagFile, Children: []Node{
		&Composite{Tag: TagStatement, Children: []Node{
			&Leaf{Kind: KindName, Text: "f", Line: 1, Col: 0},
			&Composite{Tag: TagTrailer, Children: []Node{
				&Leaf{Kind: KindLParen, Text: "(", Line: 1, Col: 1},
				&Composite{Tag: TagSequence, Children: []Node{
					&Leaf{Kind: KindName, Text: "a", Line: 1, Col: 2},
					&Leaf{Kind: KindComma, Text: ",", Line: 1, Col: 3},
					&Leaf{Kind: KindName, Text: "b", Line: 2, Col: 4},
				}},
				&Leaf{Kind: KindRParen, Text: ")", Line: 2, Col: 5},
			}},
		}},
	}}

	if !reflect.DeepEqual(want, tree) {
		deepequal.SideBySide(t, "tree", want, tree)
	}
}

func TestParseReuse(t *testing.T) {
	p := NewParser()

	first, err := p.Parse("f(a)")
	if err != nil {
		t.Fatalf("first parse: %s", err)
	}
	second, err := p.Parse("f(a)")
	if err != nil {
		t.Fatalf("second parse: %s", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("a reused parser produced a different tree for the same input")
	}
}

func TestParseErrors(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		src  string
	}{
		{name: "mismatched brackets", src: "f(a]"},
		{name: "unclosed bracket", src: "[1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.src)
			if err == nil {
				t.Fatal("expected a parse error")
			}

			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("expected a *SyntaxError, got %T", err)
			}
		})
	}
}

func TestFirstLineAndColumn(t *testing.T) {
	leaf := &Leaf{Kind: KindName, Text: "x", Line: 3, Col: 7}
	wrapped := &Composite{Tag: TagExpr, Children: []Node{
		&Composite{Tag: TagExpr, Children: []Node{leaf}},
	}}
	empty := &Composite{Tag: TagSequence}

	if line, ok := FirstLine(wrapped); !ok || line != 3 {
		t.Errorf("FirstLine(wrapped) = %d, %t; want 3, true", line, ok)
	}
	if col, ok := ColumnOf(wrapped); !ok || col != 7 {
		t.Errorf("ColumnOf(wrapped) = %d, %t; want 7, true", col, ok)
	}
	if _, ok := FirstLine(empty); ok {
		t.Error("FirstLine of an empty composite must be unknown")
	}
	if _, ok := ColumnOf(empty); ok {
		t.Error("ColumnOf of an empty composite must be unknown")
	}
}
