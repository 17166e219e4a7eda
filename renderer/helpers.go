package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// tableHeader prints the header of a markdown table. Column names starting
// with '>' are right aligned.
func tableHeader(w io.Writer, columns ...string) {
	var names, aligns []string
	for _, c := range columns {
		if name, ok := strings.CutPrefix(c, ">"); ok {
			names = append(names, name)
			aligns = append(aligns, "---:")
			continue
		}
		names = append(names, c)
		aligns = append(aligns, ":---")
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(names, " | "))
	fmt.Fprintf(w, "|%s|\n", strings.Join(aligns, "|"))
}

// tableRow prints a markdown table row.
func tableRow(w io.Writer, cells ...any) {
	s := make([]string, len(cells))
	for i, c := range cells {
		s[i] = cell(fmt.Sprint(c))
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(s, " | "))
}

// cell escapes a table cell content.
func cell(s string) string {
	if s == "" {
		return " "
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
