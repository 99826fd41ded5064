package node

import "strings"

// Node is a lightweight reference to one node of a Document. The zero Node is
// invalid.
type Node struct {
	doc *Document
	id  ID
}

func (n Node) entry() *entry {
	return &n.doc.entries[n.id]
}

// Valid reports whether n refers to an existing node.
func (n Node) Valid() bool {
	return n.doc != nil && n.id >= 0 && int(n.id) < len(n.doc.entries)
}

func (n Node) ID() ID              { return n.id }
func (n Node) Document() *Document { return n.doc }
func (n Node) Kind() KindEnum      { return n.entry().kind }
func (n Node) Name() string        { return n.entry().name }
func (n Node) Space() string       { return n.entry().space }

// Parent returns the owning element, or an invalid Node for the root.
func (n Node) Parent() Node {
	p := n.entry().parent
	if p == NoID {
		return Node{}
	}

	return Node{doc: n.doc, id: p}
}

// Attrs returns the attributes of an element in document order.
func (n Node) Attrs() []Node {
	return n.wrap(n.entry().attrs)
}

// Children returns child elements and text nodes in document order.
func (n Node) Children() []Node {
	return n.wrap(n.entry().children)
}

// Elements returns only the child elements, in document order.
func (n Node) Elements() []Node {
	var out []Node
	for _, c := range n.entry().children {
		if n.doc.entries[c].kind == KindElement {
			out = append(out, Node{doc: n.doc, id: c})
		}
	}

	return out
}

// HasChildren reports whether the node has child nodes. Attributes count as
// having a child, their value.
func (n Node) HasChildren() bool {
	e := n.entry()
	if e.kind == KindAttribute {
		return true
	}

	return len(e.children) > 0
}

// Text returns the leaf text of the node: the value of an attribute or text
// node, the first child of an element when that child is text, or "" for an
// empty element. Elements whose first child is an element have no leaf text.
func (n Node) Text() (string, bool) {
	e := n.entry()

	switch e.kind {
	case KindAttribute, KindText:
		return e.value, true
	case KindElement:
		if len(e.children) == 0 {
			return "", true
		}

		first := n.doc.entries[e.children[0]]
		if first.kind == KindText {
			return first.value, true
		}
	}

	return "", false
}

// InnerText concatenates all descendant text in document order.
func (n Node) InnerText() string {
	var b strings.Builder
	n.writeText(&b)

	return b.String()
}

func (n Node) writeText(b *strings.Builder) {
	e := n.entry()
	if e.kind != KindElement {
		b.WriteString(e.value)
		return
	}

	for _, c := range e.children {
		Node{doc: n.doc, id: c}.writeText(b)
	}
}

// Path returns a slash separated location such as /XmlClass/c/@a, used in
// diagnostics.
func (n Node) Path() string {
	var parts []string
	for cur := n; cur.Valid(); cur = cur.Parent() {
		switch cur.Kind() {
		case KindAttribute:
			parts = append(parts, "@"+cur.Name())
		case KindText:
			parts = append(parts, "text()")
		default:
			parts = append(parts, cur.Name())
		}
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}

	return b.String()
}

func (n Node) wrap(ids []ID) []Node {
	if len(ids) == 0 {
		return nil
	}

	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{doc: n.doc, id: id}
	}

	return out
}
