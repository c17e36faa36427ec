package pysyntax

// Parser builds concrete syntax trees from Python source. The zero value is
// ready to use; a single Parser may be reused across inputs and goroutines
// since parsing keeps no state on the receiver.
type Parser struct{}

// NewParser returns a tree provider instance.
func NewParser() *Parser { return &Parser{} }

// Parse tokenizes src and builds its concrete syntax tree. The returned
// error, always a *SyntaxError, means the input is unparsable; it is never
// produced for well-formed source.
func (p *Parser) Parse(src string) (*Composite, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	b := &treeBuilder{toks: toks}

	return b.file()
}

type treeBuilder struct {
	toks []token
	pos  int
}

func (b *treeBuilder) peek() token {
	if b.pos >= len(b.toks) {
		return token{kind: kindEOF}
	}

	return b.toks[b.pos]
}

func (b *treeBuilder) next() token {
	t := b.peek()
	if b.pos < len(b.toks) {
		b.pos++
	}

	return t
}

func leafOf(t token) *Leaf {
	return &Leaf{Kind: t.kind, Text: t.text, Line: t.line, Col: t.col}
}

func (b *treeBuilder) file() (*Composite, error) {
	root := &Composite{Tag: TagFile}
	for {
		switch b.peek().kind {
		case kindEOF:
			return root, nil
		case kindNewline:
			b.next()
		default:
			stmt, err := b.statement()
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, stmt)
		}
	}
}

// statement parses one logical line into a TagStatement composite. A "def"
// header gets its parameter list as a dedicated TagParameters node; a
// "class" header keeps its base list untagged, mirroring the grammar where
// class bases are not a trailer production.
func (b *treeBuilder) statement() (*Composite, error) {
	nodes, err := b.exprRun(runStatement)
	if err != nil {
		return nil, err
	}

	if b.peek().kind == kindNewline {
		b.next()
	}

	return &Composite{Tag: TagStatement, Children: nodes}, nil
}

// runMode selects the stop set of an expression run.
type runMode int

const (
	// runStatement stops at a statement break; commas are plain leaves.
	runStatement runMode = iota

	// runItem stops at a comma, a closing bracket or a "for" clause.
	runItem

	// runClause stops at a closing bracket only; commas and chained "for"
	// keywords stay inside as leaves.
	runClause
)

// exprRun parses a flat run of expression nodes up to the mode's stop set.
// Bracketed constructs become tagged composites; everything else stays a
// leaf in source order.
func (b *treeBuilder) exprRun(mode runMode) ([]Node, error) {
	var nodes []Node
	canTrail := false

	for {
		t := b.peek()
		switch t.kind {
		case kindEOF, kindNewline:
			return nodes, nil
		case KindRParen, KindRBracket, KindRBrace:
			return nodes, nil
		case KindComma:
			if mode == runItem {
				return nodes, nil
			}
			b.next()
			nodes = append(nodes, leafOf(t))
			canTrail = false
		case KindName:
			if t.text == "for" && mode == runItem {
				return nodes, nil
			}
			if mode == runStatement && t.text == "def" {
				header, err := b.defHeader()
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, header...)
				canTrail = false
				continue
			}
			if mode == runStatement && t.text == "class" {
				header, err := b.classHeader()
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, header...)
				canTrail = false
				continue
			}
			b.next()
			nodes = append(nodes, leafOf(t))
			canTrail = !isKeyword(t.text)
		case KindNumber, KindString:
			b.next()
			nodes = append(nodes, leafOf(t))
			canTrail = true
		case KindLParen, KindLBracket:
			var (
				n   Node
				err error
			)
			if canTrail {
				n, err = b.trailer()
			} else {
				n, err = b.atom()
			}
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			canTrail = true
		case KindLBrace:
			n, err := b.atom()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			canTrail = true
		case KindDot:
			if canTrail {
				n, err := b.attrTrailer()
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
				continue
			}
			b.next()
			nodes = append(nodes, leafOf(t))
		default:
			b.next()
			nodes = append(nodes, leafOf(t))
			canTrail = false
		}
	}
}

// isKeyword reports names that cannot be called or subscripted, so a
// bracket right after them opens a fresh atom instead of a trailer.
func isKeyword(name string) bool {
	switch name {
	case "and", "or", "not", "in", "is", "if", "else", "elif", "while",
		"for", "return", "yield", "assert", "del", "import", "from",
		"raise", "with", "as", "lambda", "await", "async", "pass",
		"break", "continue", "global", "nonlocal", "try", "except",
		"finally", "def", "class":
		return true
	default:
		return false
	}
}

// defHeader parses "def" [NAME] [parameters], leaving the rest of the
// header (return annotation, colon) to the caller's run.
func (b *treeBuilder) defHeader() ([]Node, error) {
	nodes := []Node{leafOf(b.next())}

	if b.peek().kind == KindName {
		nodes = append(nodes, leafOf(b.next()))
	}
	if b.peek().kind != KindLParen {
		return nodes, nil
	}

	open, seq, closing, err := b.bracketed()
	if err != nil {
		return nil, err
	}
	if seq == nil {
		seq = &Composite{Tag: TagSequence}
	}
	nodes = append(nodes, &Composite{
		Tag:      TagParameters,
		Children: []Node{open, seq, closing},
	})

	return nodes, nil
}

// classHeader parses "class" [NAME] and an optional base list. The base
// list stays an untagged composite: it is not subject to the bracket checks.
func (b *treeBuilder) classHeader() ([]Node, error) {
	nodes := []Node{leafOf(b.next())}

	if b.peek().kind == KindName {
		nodes = append(nodes, leafOf(b.next()))
	}
	if b.peek().kind != KindLParen {
		return nodes, nil
	}

	open, seq, closing, err := b.bracketed()
	if err != nil {
		return nil, err
	}
	children := []Node{open}
	if seq != nil {
		children = append(children, seq)
	}
	children = append(children, closing)
	nodes = append(nodes, &Composite{Tag: TagExpr, Children: children})

	return nodes, nil
}

// atom parses a bracket-delimited primary: (open, contents, close), or just
// (open, close) when empty.
func (b *treeBuilder) atom() (Node, error) {
	open, seq, closing, err := b.bracketed()
	if err != nil {
		return nil, err
	}

	children := []Node{open}
	if seq != nil {
		children = append(children, seq)
	}
	children = append(children, closing)

	return &Composite{Tag: TagAtom, Children: children}, nil
}

// trailer parses a postfix call or subscript attached to the preceding
// expression.
func (b *treeBuilder) trailer() (Node, error) {
	open, seq, closing, err := b.bracketed()
	if err != nil {
		return nil, err
	}

	children := []Node{open}
	if seq != nil {
		children = append(children, seq)
	}
	children = append(children, closing)

	return &Composite{Tag: TagTrailer, Children: children}, nil
}

// attrTrailer parses ".NAME" attribute access.
func (b *treeBuilder) attrTrailer() (Node, error) {
	children := []Node{leafOf(b.next())}
	if b.peek().kind == KindName {
		children = append(children, leafOf(b.next()))
	}

	return &Composite{Tag: TagTrailer, Children: children}, nil
}

func closerFor(open TokenKind) TokenKind {
	switch open {
	case KindLParen:
		return KindRParen
	case KindLBracket:
		return KindRBracket
	default:
		return KindRBrace
	}
}

// bracketed consumes an opening bracket, a comma-delimited element run and
// the matching closer. The sequence result is nil when the brackets are
// empty and collapses to the sole element when there is exactly one:
// single-element constructs carry the element itself as the middle child.
func (b *treeBuilder) bracketed() (open *Leaf, seq Node, closing *Leaf, err error) {
	opening := b.next()
	open = leafOf(opening)
	closer := closerFor(opening.kind)

	var elems []Node
	for {
		t := b.peek()
		switch t.kind {
		case kindEOF:
			return nil, nil, nil, &SyntaxError{Line: open.Line, Col: open.Col, Msg: "unclosed bracket"}
		case KindRParen, KindRBracket, KindRBrace:
			if t.kind != closer {
				return nil, nil, nil, &SyntaxError{Line: t.line, Col: t.col, Msg: "mismatched closing bracket"}
			}
			closing = leafOf(b.next())
			switch len(elems) {
			case 0:
				return open, nil, closing, nil
			case 1:
				return open, elems[0], closing, nil
			default:
				return open, &Composite{Tag: TagSequence, Children: elems}, closing, nil
			}
		case KindComma:
			b.next()
			elems = append(elems, leafOf(t))
		case KindStar, KindDoubleStar:
			// a leading variadic marker is a direct element of the sequence
			b.next()
			elems = append(elems, leafOf(t))
		default:
			if t.kind == KindName && t.text == "for" {
				comp, cerr := b.compFor()
				if cerr != nil {
					return nil, nil, nil, cerr
				}
				elems = append(elems, comp)
				continue
			}
			item, ierr := b.item()
			if ierr != nil {
				return nil, nil, nil, ierr
			}
			if item != nil {
				elems = append(elems, item)
			}
		}
	}
}

// item parses a single element of a bracketed run: everything up to the
// next comma, closing bracket or comprehension clause at this level.
func (b *treeBuilder) item() (Node, error) {
	nodes, err := b.exprRun(runItem)
	if err != nil {
		return nil, err
	}

	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return nodes[0], nil
	default:
		return &Composite{Tag: TagExpr, Children: nodes}, nil
	}
}

// compFor parses a comprehension clause: "for" and everything up to the
// closing bracket of the enclosing construct. Chained clauses and filters
// stay inside the one composite; the tag is what matters downstream.
func (b *treeBuilder) compFor() (Node, error) {
	children := []Node{leafOf(b.next())}

	rest, err := b.exprRun(runClause)
	if err != nil {
		return nil, err
	}
	children = append(children, rest...)

	return &Composite{Tag: TagCompFor, Children: children}, nil
}
