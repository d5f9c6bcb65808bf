package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/njchilds90/symcanon"
)

var (
	errorStyle  = color.New(color.FgRed, color.Bold)
	resultStyle = color.New(color.FgGreen, color.Bold)
	labelStyle  = color.New(color.FgCyan, color.Bold)
	caretStyle  = color.New(color.FgHiYellow, color.Bold)
)

// printError writes err to w. Parse errors also show the input with a
// caret under the failing column.
func printError(w io.Writer, err error) {
	errorStyle.Fprint(w, "error: ")
	fmt.Fprintln(w, err.Error())

	var perr *symcanon.ParseError
	if !errors.As(err, &perr) || strings.ContainsAny(perr.Input, "\n\r") {
		return
	}
	fmt.Fprintf(w, "  %s\n", perr.Input)
	caretStyle.Fprintf(w, "  %s^\n", strings.Repeat(" ", perr.Pos))
}

func printResult(w io.Writer, label, value string) {
	if label != "" {
		labelStyle.Fprintf(w, "%s: ", label)
	}
	resultStyle.Fprintln(w, value)
}
