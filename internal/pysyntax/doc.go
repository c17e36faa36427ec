// Package pysyntax builds concrete syntax trees for Python source.
//
// It is not a full Python parser. The grammar coverage is deliberately
// pragmatic: the package recovers exactly the tree shapes the violation
// scanner depends on and leaves everything else as generic runs of tokens.
//
// # Shapes
//
// Four composite shapes carry meaning downstream:
//
//   - TagParameters — a declared parameter list after "def NAME". Always
//     three children: open paren leaf, element sequence, close paren leaf.
//   - TagTrailer — a postfix "(…)", "[…]" or ".name" attached to a preceding
//     expression. Bracketed forms have three children (two when empty), the
//     attribute form has two.
//   - TagAtom — a delimited primary: "(…)", "[…]" or "{…}". Three children,
//     or two when the brackets are empty.
//   - TagCompFor — a comprehension clause ("for … in …" inside brackets).
//
// Comma-delimited element runs keep every element and every comma leaf in
// source order inside a TagSequence composite. Two shape rules are load
// bearing and mirror the lib2to3 trees the checks were originally written
// against:
//
//   - a sequence with exactly one child collapses to that child, so a
//     single-element construct has the element itself as the middle child;
//   - a leading "*" or "**" of an element is emitted as a direct STAR or
//     DOUBLESTAR leaf of the sequence, keeping variadic markers visible.
//
// # Lifecycle
//
// A Parser is stateless across calls: construct one, reuse it for any number
// of inputs, from any number of goroutines. Produced trees are immutable and
// exclusively owned by the caller.
package pysyntax
