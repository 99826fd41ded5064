package migrator

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"xml-migrator/internal/convert"
	"xml-migrator/internal/decode"
	"xml-migrator/internal/diagnostic"
	"xml-migrator/internal/match"
	"xml-migrator/internal/schema"
	"xml-migrator/node"
)

var (
	ErrMalformed   = errors.New("malformed XML document")
	ErrSessionUsed = errors.New("migration session already used")
	ErrNotComplete = errors.New("migration session is not complete")
)

// suggestions reported per dropped node
const maxSuggestions = 3

type State int

const (
	StateCreated State = iota
	StateDecoding
	StateDraining
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateDecoding:
		return "decoding"
	case StateDraining:
		return "draining"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is one migration of one document into one value. It runs once
// and is not safe for concurrent use.
type Session struct {
	m     *Migrator
	typ   *schema.Type
	depth int
	conv  *convert.Converter

	state    State
	queue    Queue
	instance reflect.Value

	canonical []byte
	snapshot  *node.Document
	diags     diagnostic.Diagnostics
}

func (s *Session) State() State { return s.state }

// Type is the struct type the session migrates into.
func (s *Session) Type() reflect.Type { return s.typ.GoType }

// Root is the element name the document must start with.
func (s *Session) Root() string {
	if s.depth == 0 && s.m.cfg.Root != "" {
		return s.m.cfg.Root
	}

	return s.typ.Root
}

// Instance is the migrated value, a pointer to the session type, or nil
// before the session has run.
func (s *Session) Instance() any {
	if !s.instance.IsValid() {
		return nil
	}

	return s.instance.Interface()
}

// Canonical is the migrated value serialized with encoding/xml.
func (s *Session) Canonical() []byte { return s.canonical }

// Snapshot is Canonical parsed back into a document.
func (s *Session) Snapshot() *node.Document { return s.snapshot }

// Diagnostics reports dropped nodes and degraded conversions, nested
// sessions included.
func (s *Session) Diagnostics() Diagnostics { return s.diags }

// Migrate reads a complete document and returns a pointer to the new value.
func (s *Session) Migrate(r io.Reader) (any, error) {
	if err := s.start(); err != nil {
		return nil, err
	}

	doc, err := node.Parse(r)
	if err != nil {
		s.state = StateFailed
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return s.migrateDocument(doc)
}

// MigrateFile is Migrate for a file path.
func (s *Session) MigrateFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.Migrate(f)
}

// MigrateDocument migrates an already parsed document.
func (s *Session) MigrateDocument(doc *node.Document) (any, error) {
	if err := s.start(); err != nil {
		return nil, err
	}

	return s.migrateDocument(doc)
}

// MigrateNode implements convert.Nested: n is migrated by a new session one
// level deeper whose reports are merged into s.
func (s *Session) MigrateNode(n node.Node, t reflect.Type, depth int) (reflect.Value, error) {
	child, err := s.m.newSession(t, depth)
	if err != nil {
		return reflect.Value{}, err
	}

	if err := child.start(); err != nil {
		return reflect.Value{}, err
	}

	err = child.run(n)
	s.diags.Merge(child.diags)
	if err != nil {
		return reflect.Value{}, err
	}

	return child.instance, nil
}

func (s *Session) start() error {
	if s.state != StateCreated {
		return fmt.Errorf("%w: %s is %s", ErrSessionUsed, s.typ.GoType, s.state)
	}

	s.state = StateDecoding

	return nil
}

func (s *Session) migrateDocument(doc *node.Document) (any, error) {
	if err := decode.CheckRoot(doc.Root(), s.Root()); err != nil {
		s.state = StateFailed
		return nil, err
	}

	if err := s.run(doc.Root()); err != nil {
		return nil, err
	}

	s.takeSnapshot()

	return s.Instance(), nil
}

// run decodes n, then drains the queue. Only decoding can fail.
func (s *Session) run(n node.Node) error {
	dec := decode.Decoder{
		Registry:   s.m.registry,
		Categories: s.conv.Categories,
		Hooks:      s.hooks(),
	}

	v, err := dec.Decode(n, s.typ.GoType)
	if err != nil {
		s.state = StateFailed
		return err
	}
	s.instance = v

	s.state = StateDraining
	for p, ok := s.queue.Next(); ok; p, ok = s.queue.Next() {
		s.resolve(p)
	}

	s.state = StateComplete

	return nil
}

func (s *Session) resolve(p Pending) {
	st, err := s.m.registry.Register(p.Owner.Type())
	if err != nil {
		s.diags.AddWarning(diagnostic.CodeAssignFailed, err.Error(), p.Owner.Type().String(), p.Node.Path())
		return
	}

	member, ok := st.Resolve(p.Node.Name())
	if !ok {
		s.drop(p, st)
		return
	}

	target := member.Type
	if member.Repeated() {
		target = member.ElemType()
	}

	res := s.conv.Convert(convert.Object{Node: p.Node, Owner: p.Owner}, member, target, s.depth)
	typeName := st.GoType.String()

	if res.Err != nil {
		s.diags.AddWarning(diagnostic.CodeConversionFailed,
			fmt.Sprintf("%s zeroed: %v", member.Field, res.Err), typeName, p.Node.Path())
		s.m.logger.Printf("%s: %s zeroed: %v", p.Node.Path(), member.Field, res.Err)
	}

	for _, itemErr := range res.Items {
		s.diags.AddWarning(diagnostic.CodePartialList,
			fmt.Sprintf("%s %v zeroed", member.Field, itemErr), typeName, p.Node.Path())
	}

	if member.Repeated() {
		err = member.Append(p.Owner, res.Value)
	} else {
		err = member.Set(p.Owner, res.Value)
	}

	if err != nil {
		s.diags.AddWarning(diagnostic.CodeAssignFailed, err.Error(), typeName, p.Node.Path())
	}
}

func (s *Session) drop(p Pending, st *schema.Type) {
	suggestions := match.Suggest(p.Node.Name(), st.MemberNames(), maxSuggestions)

	s.diags.AddInfo(diagnostic.CodeUnmappedNode,
		fmt.Sprintf("%s %q matches no member", p.Node.Kind(), p.Node.Name()),
		st.GoType.String(), p.Node.Path(), suggestions...)

	s.m.logger.Printf("%s: dropped, %s has no member or alias %q", p.Node.Path(), st.GoType, p.Node.Name())
}

func (s *Session) takeSnapshot() {
	data, err := s.encode(s.Root())
	if err == nil {
		s.canonical = data
		s.snapshot, err = node.Parse(bytes.NewReader(data))
	}

	if err != nil {
		s.diags.AddWarning(diagnostic.CodeSnapshotFailed, err.Error(), s.typ.GoType.String(), "")
		s.m.logger.Printf("snapshot of %s failed: %v", s.typ.GoType, err)
	}
}

func (s *Session) encode(root string) ([]byte, error) {
	var buf bytes.Buffer

	enc := xml.NewEncoder(&buf)
	enc.Indent("", s.m.cfg.Indent)

	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeElement(s.instance.Interface(), start); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// LogAsXML logs the migrated value serialized under name, or under the root
// name when name is empty.
func (s *Session) LogAsXML(name string) error {
	if s.state != StateComplete {
		return ErrNotComplete
	}

	if name == "" {
		name = s.Root()
	}

	data, err := s.encode(name)
	if err != nil {
		return err
	}

	s.m.logger.Printf("%s\n", data)

	return nil
}

// LogTree logs the snapshot tree dump, one line per node.
func (s *Session) LogTree() error {
	if s.snapshot == nil {
		return ErrNotComplete
	}

	for _, line := range node.Lines(s.snapshot.Root()) {
		s.m.logger.Printf("%s", line)
	}

	return nil
}
