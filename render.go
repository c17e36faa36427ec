package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/sirkon/pystrict/internal/scan"
)

var codeColor = color.New(color.FgRed, color.Bold)

// renderViolation writes one finding as "<file>:<line>:<column> <CODE> <message>".
// An unresolved column renders as "-"; the codes and message texts are a
// frozen contract with consumers parsing this output.
func renderViolation(w io.Writer, file string, v scan.Violation) {
	column := "-"
	if v.Column >= 0 {
		column = strconv.Itoa(v.Column)
	}

	fmt.Fprintf(w, "%s:%d:%s %s %s\n", file, v.Line, column, codeColor.Sprint(v.Code), v.Code.Message())
}
