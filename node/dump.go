package node

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const branchMark = "˯"

// Lines renders the subtree rooted at n, one line per node. Element children
// are indented two spaces deeper than their parent, attributes one space.
// Nodes with children are prefixed with a branch mark. Text and attribute
// values are printed as "Value <owner> = <content>", with the content quoted
// unless it is a number.
func Lines(n Node) []string {
	if !n.Valid() {
		return nil
	}

	var out []string
	appendLines(&out, n, 0)

	return out
}

// Dump writes Lines(n) to w.
func Dump(w io.Writer, n Node) error {
	for _, line := range Lines(n) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func appendLines(out *[]string, n Node, indent int) {
	switch n.Kind() {
	case KindAttribute:
		*out = append(*out, formatLine(indent, true, KindAttribute.String(), ""))
		*out = append(*out, formatValue(indent+2, n.Name(), n.entry().value))
		return

	case KindText:
		*out = append(*out, formatValue(indent, n.Parent().Name(), n.entry().value))
		return
	}

	*out = append(*out, formatLine(indent, n.HasChildren(), n.Kind().String(), ""))

	for _, a := range n.Attrs() {
		appendLines(out, a, indent+1)
	}

	for _, c := range n.Children() {
		appendLines(out, c, indent+2)
	}
}

func formatValue(indent int, owner, value string) string {
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		value = strconv.Quote(value)
	}

	return formatLine(indent, false, KindText.String(), " "+owner+" = "+value)
}

func formatLine(indent int, branch bool, label, rest string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indent))
	if branch {
		b.WriteString(branchMark)
	}
	b.WriteString(label)
	b.WriteString(rest)

	return b.String()
}
