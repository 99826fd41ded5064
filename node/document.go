// Package node is the in-memory form of a legacy XML document: an arena of
// elements, attributes and text nodes addressed by ID, plus the diagnostic
// tree dump.
package node

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

var (
	ErrNoRoot      = errors.New("document has no root element")
	ErrAfterRoot   = errors.New("content after document root")
	ErrTextOutside = errors.New("character data outside root element")
	ErrUnknownNode = errors.New("node does not belong to the document")
)

// ID addresses a node inside its Document.
type ID int32

// NoID is the parent of the root and of detached nodes.
const NoID ID = -1

type entry struct {
	kind     KindEnum
	space    string
	name     string
	value    string
	parent   ID
	attrs    []ID
	children []ID
}

// Document is a parsed XML document. Nodes never move once added, so a Node
// stays valid for the lifetime of its Document.
type Document struct {
	entries []entry
	root    ID
}

// Parse reads a complete document. Whitespace-only text between elements,
// comments, processing instructions and namespace declarations are dropped.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	doc := &Document{root: NoID}

	var stack []ID
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: <%s>", ErrAfterRoot, t.Name.Local)
			}

			parent := NoID
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			id := doc.add(entry{kind: KindElement, space: t.Name.Space, name: t.Name.Local, parent: parent})
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}

				attr := doc.add(entry{kind: KindAttribute, space: a.Name.Space, name: a.Name.Local, value: a.Value, parent: id})
				doc.entries[id].attrs = append(doc.entries[id].attrs, attr)
			}

			if parent == NoID {
				doc.root = id
			} else {
				doc.entries[parent].children = append(doc.entries[parent].children, id)
			}

			stack = append(stack, id)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			text := string(t)
			if len(stack) == 0 {
				if !isBlank(text) {
					return nil, ErrTextOutside
				}
				continue
			}

			doc.appendText(stack[len(stack)-1], text)
		}
	}

	if doc.root == NoID {
		return nil, ErrNoRoot
	}

	doc.dropBlankText()

	return doc, nil
}

// ParseString parses a document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document element.
func (d *Document) Root() Node {
	return Node{doc: d, id: d.root}
}

// Node returns the node with the given id.
func (d *Document) Node(id ID) (Node, error) {
	if id < 0 || int(id) >= len(d.entries) {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}

	return Node{doc: d, id: id}, nil
}

// Len returns the number of nodes, attributes and text nodes included.
func (d *Document) Len() int {
	return len(d.entries)
}

func (d *Document) add(e entry) ID {
	d.entries = append(d.entries, e)
	return ID(len(d.entries) - 1)
}

// appendText merges adjacent character data (split by the tokenizer around
// entities and CDATA sections) into a single text node.
func (d *Document) appendText(parent ID, text string) {
	children := d.entries[parent].children
	if n := len(children); n > 0 && d.entries[children[n-1]].kind == KindText {
		d.entries[children[n-1]].value += text
		return
	}

	id := d.add(entry{kind: KindText, value: text, parent: parent})
	d.entries[parent].children = append(d.entries[parent].children, id)
}

func (d *Document) dropBlankText() {
	for i := range d.entries {
		e := &d.entries[i]
		if e.kind != KindElement {
			continue
		}

		kept := e.children[:0]
		for _, c := range e.children {
			if d.entries[c].kind == KindText && isBlank(d.entries[c].value) {
				d.entries[c].parent = NoID
				continue
			}
			kept = append(kept, c)
		}
		e.children = kept
	}
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func isBlank(text string) bool {
	for _, r := range text {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}

	return true
}
