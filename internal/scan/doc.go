// Package scan implements the violation scanner of pystrict.
//
// The scanner walks a concrete syntax tree produced by pysyntax and flags
// two formatting violations in multi-line bracketed constructs:
//
//   - S100 — the first element shares a source line with its opening bracket;
//   - S101 — a construct spanning multiple lines has no trailing comma
//     before its closing bracket.
//
// Three composite shapes are inspected: declared parameter lists, call and
// subscript trailers, and bracket-delimited collection literals. Everything
// else is traversed but never checked. Checks nest: a multi-line literal
// inside a multi-line call reports independently of its parent.
//
// # Exemptions
//
// Single-line constructs are never flagged. Empty constructs are never
// flagged. A parameter list containing a bare "*" or "**" marker is exempt
// from S101, since a trailing comma there is a syntax error in the source
// grammar. A literal holding a comprehension clause is exempt from S101 as
// well: trailing commas after a comprehension body are not enforced.
//
// # Contract
//
// Scan is a pure function of the tree: no side effects, no I/O, same input
// gives the same ordered output. Violations come out in pre-order traversal
// order, which is not guaranteed to be sorted by position; callers wanting
// sorted output must sort themselves. The traversal uses an explicit work
// stack, so tree depth is bounded by available memory, not by goroutine
// stack growth.
//
// A tree violating the provider's structural promises makes Scan fail fast
// with an error wrapping ErrMalformedTree. That error signals a provider
// mismatch, never a problem with the checked source.
//
// Independent trees may be scanned concurrently with no coordination; the
// Reporter type aggregates results of such concurrent scans.
package scan
