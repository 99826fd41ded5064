// Package convert turns a captured legacy node into a value of a member's
// declared type: it tries to parse the node text first, and falls back to an
// ordered collection or a nested migration depending on the target shape.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"xml-migrator/internal/schema"
	"xml-migrator/node"
	"xml-migrator/primitive"
)

var (
	ErrDepthExceeded = errors.New("maximum migration depth exceeded")
	ErrNoType        = errors.New("no target type")
	ErrNoNested      = errors.New("nested migration is not configured")
	ErrUnsupported   = errors.New("target type cannot be migrated")
	ErrPanic         = errors.New("conversion panicked")
)

// Object is a captured node paired with the struct value that owns it.
type Object struct {
	Node  node.Node
	Owner reflect.Value
}

// Retarget returns a copy of o pointing at another node of the same owner.
func (o Object) Retarget(n node.Node) Object {
	return Object{Node: n, Owner: o.Owner}
}

// Nested migrates a node into a new value of struct type t in an independent
// session one level deeper. The result is a pointer to t.
type Nested interface {
	MigrateNode(n node.Node, t reflect.Type, depth int) (reflect.Value, error)
}

// Result is the outcome of one conversion. On failure Value holds the zero
// value of the target and Err the reason.
type Result struct {
	Value    reflect.Value
	Strategy DispatcherEnum
	Err      error
	// Items holds the failures of collection items that were zeroed.
	Items []error
}

func (r Result) OK() bool { return r.Err == nil }

// Event describes a conversion to observers. Result is only set for
// AfterConvert.
type Event struct {
	Object Object
	// Member is nil for collection items.
	Member *schema.Member
	Target reflect.Type
	Depth  int
	Result Result
}

func (e Event) String() string {
	s := fmt.Sprintf("%s -> %s", e.Object.Node.Path(), typeStr(e.Target))

	switch {
	case e.Result.Err != nil:
		s += fmt.Sprintf(" failed: %v", e.Result.Err)
	case e.Result.Value.IsValid() && e.Result.Value.CanInterface():
		s += spew.Sprintf(" via %s = %v", e.Result.Strategy, e.Result.Value.Interface())
	}

	return s
}

// Observer is notified around every conversion, collection items included.
// Observers cannot change the outcome.
type Observer struct {
	BeforeConvert func(Event)
	AfterConvert  func(Event)
}

// Converter is safe for concurrent use. Copies made by WithNested share
// casters and observers with the original.
type Converter struct {
	Categories primitive.CategoryEnum
	MaxDepth   int
	Nested     Nested

	ext *extensions
}

type extensions struct {
	mu        sync.RWMutex
	casters   map[reflect.Type]Caster
	observers []Observer
}

func New(categories primitive.CategoryEnum, maxDepth int) *Converter {
	return &Converter{
		Categories: categories,
		MaxDepth:   maxDepth,
		ext:        &extensions{casters: make(map[reflect.Type]Caster)},
	}
}

// WithNested returns a converter sharing c's configuration that hands
// nested migrations to n.
func (c *Converter) WithNested(n Nested) *Converter {
	cp := *c
	cp.Nested = n

	return &cp
}

// Register adds a custom caster, see ParseCaster for accepted signatures. A
// later caster for the same type replaces the earlier one.
func (c *Converter) Register(fn any) error {
	caster, err := ParseCaster(fn)
	if err != nil {
		return err
	}

	c.ext.mu.Lock()
	defer c.ext.mu.Unlock()

	c.ext.casters[caster.Target()] = caster

	return nil
}

// Observe appends an observer. Observers run in registration order.
func (c *Converter) Observe(o Observer) {
	c.ext.mu.Lock()
	defer c.ext.mu.Unlock()

	c.ext.observers = append(c.ext.observers, o)
}

func (c *Converter) caster(t reflect.Type) (Caster, bool) {
	c.ext.mu.RLock()
	defer c.ext.mu.RUnlock()

	caster, ok := c.ext.casters[t]

	return caster, ok
}

// Convert builds a value of target from obj. It never fails: a conversion
// that cannot complete yields the zero value with Result.Err set.
func (c *Converter) Convert(obj Object, member *schema.Member, target reflect.Type, depth int) Result {
	c.ext.mu.RLock()
	observers := c.ext.observers
	c.ext.mu.RUnlock()

	ev := Event{Object: obj, Member: member, Target: target, Depth: depth}
	for _, o := range observers {
		if o.BeforeConvert != nil {
			o.BeforeConvert(ev)
		}
	}

	ev.Result = c.safeConvert(obj, target, depth)

	for _, o := range observers {
		if o.AfterConvert != nil {
			o.AfterConvert(ev)
		}
	}

	return ev.Result
}

func (c *Converter) safeConvert(obj Object, target reflect.Type, depth int) (res Result) {
	if target == nil {
		return Result{Err: ErrNoType}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Value: reflect.Zero(target), Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	if depth > c.MaxDepth {
		return Result{Value: reflect.Zero(target), Err: fmt.Errorf("%w: %d", ErrDepthExceeded, c.MaxDepth)}
	}

	dst := target
	if dst.Kind() == reflect.Pointer {
		dst = dst.Elem()
		if dst.Kind() == reflect.Pointer {
			return Result{Value: reflect.Zero(target), Err: fmt.Errorf("%w: %s", ErrUnsupported, typeStr(target))}
		}
	}

	res = c.convert(obj, dst, depth)
	if res.Err != nil {
		res.Value = reflect.Zero(target)
		return res
	}

	if target.Kind() == reflect.Pointer {
		res.Value = wrapPointer(res.Value)
	}

	return res
}

func (c *Converter) convert(obj Object, dst reflect.Type, depth int) Result {
	strategy := c.Dispatch(dst)
	if strategy == DispatcherUnknown {
		return Result{Err: fmt.Errorf("%w: %s", ErrUnsupported, typeStr(dst))}
	}

	var parseErr error
	if text, ok := leafText(obj.Node); ok {
		v, err := c.tryParse(text, dst, strategy)
		if err == nil {
			return Result{Value: v, Strategy: strategy}
		}
		parseErr = err
	}

	switch strategy {
	case DispatcherSlice:
		return c.collection(obj, dst, depth)

	case DispatcherStruct:
		return c.nested(obj, dst, depth)

	case DispatcherCaster, DispatcherPrimitive:
		if parseErr == nil {
			parseErr = fmt.Errorf("%w: %s has no leaf text for %s", ErrUnsupported, obj.Node.Path(), typeStr(dst))
		}
	}

	return Result{Strategy: strategy, Err: parseErr}
}

func (c *Converter) tryParse(text string, dst reflect.Type, strategy DispatcherEnum) (reflect.Value, error) {
	if strategy == DispatcherCaster {
		caster, _ := c.caster(dst)
		return caster.Call(text)
	}

	return primitive.Parse(text, dst, c.Categories)
}

// collection converts every child node, text included, in document order,
// into an item of dst. Failing items are zeroed, the length is kept.
func (c *Converter) collection(obj Object, dst reflect.Type, depth int) Result {
	children := obj.Node.Children()
	out := reflect.MakeSlice(dst, 0, len(children))

	res := Result{Strategy: DispatcherSlice}
	for i, child := range children {
		item := c.Convert(obj.Retarget(child), nil, dst.Elem(), depth)
		if item.Err != nil {
			res.Items = append(res.Items, fmt.Errorf("item %d: %w", i, item.Err))
		}
		res.Items = append(res.Items, item.Items...)

		out = reflect.Append(out, item.Value)
	}
	res.Value = out

	return res
}

func (c *Converter) nested(obj Object, dst reflect.Type, depth int) Result {
	if c.Nested == nil {
		return Result{Strategy: DispatcherStruct, Err: ErrNoNested}
	}

	v, err := c.Nested.MigrateNode(obj.Node, dst, depth+1)
	if err != nil {
		return Result{Strategy: DispatcherStruct, Err: err}
	}

	return Result{Value: v.Elem(), Strategy: DispatcherStruct}
}

// leafText is the text try-parse works on. Elements with child elements have
// none.
func leafText(n node.Node) (string, bool) {
	if !n.Valid() {
		return "", false
	}

	if n.Kind() == node.KindElement {
		for _, c := range n.Children() {
			if c.Kind() == node.KindElement {
				return "", false
			}
		}
	}

	return n.Text()
}
