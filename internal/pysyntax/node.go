package pysyntax

import "fmt"

// RuleTag identifies the grammatical role of a Composite.
type RuleTag int

const (
	tagInvalid RuleTag = iota

	// TagFile is the root of a parsed source.
	TagFile

	// TagStatement is one logical line.
	TagStatement

	// TagParameters is a declared parameter list: "(", elements, ")".
	TagParameters

	// TagTrailer is a postfix call, subscript or attribute access.
	TagTrailer

	// TagAtom is a bracket-delimited primary expression.
	TagAtom

	// TagSequence is a comma-delimited element run inside brackets.
	TagSequence

	// TagCompFor is a comprehension clause inside brackets.
	TagCompFor

	// TagExpr is any other grouping of tokens with no dedicated shape.
	TagExpr
)

var ruleTagNames = map[RuleTag]string{
	TagFile:       "file_input",
	TagStatement:  "simple_stmt",
	TagParameters: "parameters",
	TagTrailer:    "trailer",
	TagAtom:       "atom",
	TagSequence:   "arglist",
	TagCompFor:    "comp_for",
	TagExpr:       "expr",
}

func (t RuleTag) String() string {
	v, ok := ruleTagNames[t]
	if !ok {
		return fmt.Sprintf("rule-tag-invalid(%d)", t)
	}

	return v
}

// Node is the base interface implemented by both CST node variants.
// Trees are immutable once produced: every node except the root has exactly
// one parent and no node is shared between two positions.
type Node interface {
	isNode()
}

// Leaf is a CST node holding a single source token.
type Leaf struct {
	Kind TokenKind
	Text string
	Line int // 1-based
	Col  int // 0-based
}

func (*Leaf) isNode() {}

// Composite is a CST node representing a grammar production with an ordered
// list of children. Child order is source order. Children may be empty only
// in degenerate empty-collection cases.
type Composite struct {
	Tag      RuleTag
	Children []Node
}

func (*Composite) isNode() {}

// FirstLine reports the line of the leftmost leaf in the subtree of n.
// Composites do not store a line of their own, so the lookup descends
// through first children. The second result is false when the descent hits
// a composite with no children.
//
// The descent is a loop rather than a recursion: the depth of a tree is
// bounded only by the input.
func FirstLine(n Node) (int, bool) {
	for {
		switch v := n.(type) {
		case *Leaf:
			return v.Line, true
		case *Composite:
			if len(v.Children) == 0 {
				return 0, false
			}
			n = v.Children[0]
		default:
			return 0, false
		}
	}
}

// ColumnOf reports the column of the leftmost leaf in the subtree of n,
// resolved the same way as FirstLine. A composite with no children on the
// descent path makes the column unknown.
func ColumnOf(n Node) (int, bool) {
	for {
		switch v := n.(type) {
		case *Leaf:
			return v.Col, true
		case *Composite:
			if len(v.Children) == 0 {
				return 0, false
			}
			n = v.Children[0]
		default:
			return 0, false
		}
	}
}
