// Package strictrules defines the canonical rule codes (S-series) enforced by pystrict.
// Each rule represents a distinct formatting invariant of multi-line bracketed
// constructs.
//
// Rule numbering scheme:
//
//	100–109  Multi-line element placement and separator rules
package strictrules

import "fmt"

// Code represents a pystrict rule code (S-series).
type Code int

const (
	codeInvalid Code = iota

	S100FirstArgumentOnOpenLine
	S101MissingTrailingComma
)

var codeValueMap = map[Code]string{
	S100FirstArgumentOnOpenLine: "S100",
	S101MissingTrailingComma:    "S101",
}

// String returns the canonical short code of the rule.
// Example: "S100"
func (c Code) String() string {
	v, ok := codeValueMap[c]
	if !ok {
		return fmt.Sprintf("invalid(%d)", c)
	}

	return v
}

// Message returns the fixed human-readable text of the rule. The wording is
// part of the external contract and must not change.
func (c Code) Message() string {
	switch c {
	case S100FirstArgumentOnOpenLine:
		return "First argument on the same line"
	case S101MissingTrailingComma:
		return "Multi-line construct missing trailing comma"
	default:
		return fmt.Sprintf("unknown-rule(%d)", c)
	}
}

func (c Code) MarshalText() ([]byte, error) {
	v, ok := codeValueMap[c]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid rule code (%d)", c)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (c *Code) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range codeValueMap {
		if v == text {
			*c = k
			return nil
		}
	}

	return fmt.Errorf("unknown rule code %q", text)
}

// Canonical constructors — for readability and stable call sites.

func FirstArgumentOnOpenLine() Code { return S100FirstArgumentOnOpenLine }
func MissingTrailingComma() Code    { return S101MissingTrailingComma }
