package scan

import (
	"errors"
	"fmt"

	"github.com/sirkon/pystrict/internal/pysyntax"
	"github.com/sirkon/pystrict/internal/strictrules"
)

// ErrMalformedTree reports a syntax tree violating the structural promises
// of the provider. It indicates a provider/grammar mismatch, not bad input.
var ErrMalformedTree = errors.New("malformed syntax tree")

// Violation is a single style finding. Produced once, never mutated.
type Violation struct {
	Line   int // 1-based
	Column int // 0-based, -1 when the position could not be resolved
	Code   strictrules.Code
}

// Scan walks the tree in pre-order and collects every violation found at
// any visited node, in traversal order. It is a pure function of the tree.
func Scan(root pysyntax.Node) ([]Violation, error) {
	var found []Violation

	// Explicit work stack: depth of adversarially nested input must not
	// translate into goroutine stack growth.
	stack := []pysyntax.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		comp, ok := n.(*pysyntax.Composite)
		if !ok {
			continue
		}

		var (
			vs  []Violation
			err error
		)
		switch comp.Tag {
		case pysyntax.TagParameters:
			vs, err = checkParameterList(comp)
		case pysyntax.TagTrailer:
			vs, err = checkTrailer(comp)
		case pysyntax.TagAtom:
			vs, err = checkAtom(comp)
		}
		if err != nil {
			return nil, err
		}
		found = append(found, vs...)

		// Children go on top in reverse so the walk stays pre-order.
		// Recursion continues under every node: violations nest.
		for i := len(comp.Children) - 1; i >= 0; i-- {
			stack = append(stack, comp.Children[i])
		}
	}

	return found, nil
}

// checkParameterList inspects a three-child construct: opening bracket,
// element sequence, closing bracket. It serves both declared parameter
// lists and bracketed trailers dispatched here by checkTrailer.
func checkParameterList(node *pysyntax.Composite) ([]Violation, error) {
	if len(node.Children) != 3 {
		return nil, fmt.Errorf("%w: %s node with %d children, want 3", ErrMalformedTree, node.Tag, len(node.Children))
	}

	if !isMultiLine(node.Children) {
		return nil, nil
	}

	open, middle := node.Children[0], node.Children[1]

	// A leaf or empty middle means no element sequence: an empty multi-line
	// parameter list is deliberately not flagged.
	elements := childrenOf(middle)
	if len(elements) == 0 {
		return nil, nil
	}

	var found []Violation

	openLine, ok := pysyntax.FirstLine(open)
	if !ok {
		return nil, fmt.Errorf("%w: %s node with a positionless opening bracket", ErrMalformedTree, node.Tag)
	}

	first := elements[0]
	if line, ok := pysyntax.FirstLine(first); ok && line == openLine {
		found = append(found, violationAt(first, strictrules.FirstArgumentOnOpenLine()))
	}

	// A trailing comma after "*" or "**" parameters is a syntax error in
	// the source grammar, so their presence waives the S101 demand.
	hasVariadicMarker := false
	for _, el := range elements {
		if leaf, ok := el.(*pysyntax.Leaf); ok {
			if leaf.Kind == pysyntax.KindStar || leaf.Kind == pysyntax.KindDoubleStar {
				hasVariadicMarker = true
				break
			}
		}
	}

	last := elements[len(elements)-1]
	if !isComma(last) && !hasVariadicMarker {
		found = append(found, violationAt(last, strictrules.MissingTrailingComma()))
	}

	return found, nil
}

// checkTrailer dispatches a postfix construct. A bracketed trailer whose
// sole content is itself a delimited literal is checked as that literal, so
// the checks fire on f([...]) and x[{...}] forms too. The attribute form
// (two children) yields nothing.
func checkTrailer(node *pysyntax.Composite) ([]Violation, error) {
	if len(node.Children) != 3 {
		return nil, nil
	}

	if middle, ok := node.Children[1].(*pysyntax.Composite); ok && middle.Tag == pysyntax.TagAtom {
		return checkAtom(middle)
	}

	return checkParameterList(node)
}

// checkAtom inspects a delimited literal. Only brace and square-bracket
// literals are checked; parenthesized atoms are deliberately out of scope.
func checkAtom(node *pysyntax.Composite) ([]Violation, error) {
	if len(node.Children) < 3 || !isMultiLine(node.Children) {
		return nil, nil
	}

	first, ok := node.Children[0].(*pysyntax.Leaf)
	if !ok {
		return nil, fmt.Errorf("%w: atom node headed by a composite", ErrMalformedTree)
	}
	if first.Text != "{" && first.Text != "[" {
		return nil, nil
	}
	if len(node.Children) != 3 {
		return nil, fmt.Errorf("%w: bracketed atom with %d children, want 3", ErrMalformedTree, len(node.Children))
	}

	open, contents := first, node.Children[1]

	var found []Violation

	if line, ok := pysyntax.FirstLine(contents); ok && line == open.Line {
		found = append(found, violationAt(contents, strictrules.FirstArgumentOnOpenLine()))
	}

	// The last logical element: the last child of the contents, or the
	// contents itself for a single-element literal.
	last := contents
	elements := childrenOf(contents)
	if len(elements) > 0 {
		last = elements[len(elements)-1]
	}

	// Trailing commas are never demanded after a comprehension body.
	hasComprehension := false
	for _, el := range elements {
		if comp, ok := el.(*pysyntax.Composite); ok && comp.Tag == pysyntax.TagCompFor {
			hasComprehension = true
			break
		}
	}

	if !isComma(last) && !hasComprehension {
		found = append(found, violationAt(last, strictrules.MissingTrailingComma()))
	}

	return found, nil
}

// isMultiLine reports whether the direct children start on more than one
// distinct source line. Children with no resolvable position contribute
// nothing.
func isMultiLine(children []pysyntax.Node) bool {
	lines := make(map[int]struct{}, len(children))
	for _, c := range children {
		if line, ok := pysyntax.FirstLine(c); ok {
			lines[line] = struct{}{}
		}
	}

	return len(lines) > 1
}

func childrenOf(n pysyntax.Node) []pysyntax.Node {
	comp, ok := n.(*pysyntax.Composite)
	if !ok {
		return nil
	}

	return comp.Children
}

func isComma(n pysyntax.Node) bool {
	leaf, ok := n.(*pysyntax.Leaf)

	return ok && leaf.Kind == pysyntax.KindComma
}

func violationAt(n pysyntax.Node, code strictrules.Code) Violation {
	line, _ := pysyntax.FirstLine(n)
	col, ok := pysyntax.ColumnOf(n)
	if !ok {
		col = -1
	}

	return Violation{Line: line, Column: col, Code: code}
}
