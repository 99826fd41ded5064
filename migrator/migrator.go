package migrator

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"xml-migrator/internal/convert"
	"xml-migrator/internal/mapping"
	"xml-migrator/internal/schema"
	"xml-migrator/node"
	"xml-migrator/options"
)

// Migrator holds what sessions share: configuration, the member registry,
// casters and observers. It is safe for concurrent use; observers and the
// logger must be as well.
type Migrator struct {
	cfg       options.Config
	registry  *schema.Registry
	converter *convert.Converter
	logger    Logger
	mappings  []*mapping.MappingFile
}

type Option func(*Migrator) error

// WithConfig replaces the whole configuration.
func WithConfig(cfg options.Config) Option {
	return func(m *Migrator) error {
		m.cfg = cfg
		return nil
	}
}

// WithOptions applies configuration options on top of the current ones.
func WithOptions(opts ...options.Option) Option {
	return func(m *Migrator) error {
		m.cfg.Apply(opts...)
		return nil
	}
}

// WithConfigFile loads a YAML configuration file, then applies XML_MIGRATOR_*
// environment overrides.
func WithConfigFile(path string) Option {
	return func(m *Migrator) error {
		cfg, err := options.LoadFile(path)
		if err != nil {
			return err
		}

		if err := options.ApplyEnv(&cfg); err != nil {
			return err
		}

		m.cfg = cfg

		return nil
	}
}

// WithEnv applies XML_MIGRATOR_* environment overrides to the current
// configuration.
func WithEnv() Option {
	return func(m *Migrator) error {
		return options.ApplyEnv(&m.cfg)
	}
}

func WithLogger(l Logger) Option {
	return func(m *Migrator) error {
		if l == nil {
			l = discardLogger()
		}
		m.logger = l
		return nil
	}
}

// WithObserver adds an observer called around every conversion.
func WithObserver(o Observer) Option {
	return func(m *Migrator) error {
		m.converter.Observe(o)
		return nil
	}
}

// WithCaster adds a custom conversion from legacy text, see
// convert.ParseCaster for the accepted signatures.
func WithCaster(fn any) Option {
	return func(m *Migrator) error {
		return m.converter.Register(fn)
	}
}

// WithMapping adds alias declarations from a mapping file.
func WithMapping(mf *mapping.MappingFile) Option {
	return func(m *Migrator) error {
		m.mappings = append(m.mappings, mf)
		return nil
	}
}

func New(opts ...Option) (*Migrator, error) {
	m := &Migrator{
		cfg:       options.Default(),
		registry:  schema.NewRegistry(),
		converter: convert.New(0, 0),
		logger:    discardLogger(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	m.converter.Categories = m.cfg.Categories.Enum()
	m.converter.MaxDepth = m.cfg.MaxDepth

	if m.cfg.Mapping != "" {
		mf, err := mapping.LoadFile(m.cfg.Mapping)
		if err != nil {
			return nil, err
		}
		m.mappings = append(m.mappings, mf)
	}

	for _, mf := range m.mappings {
		if diags := mapping.Validate(mf); diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", options.ErrInvalidConfig, diags.Error())
		}
		mapping.Apply(mf, m.registry)
	}

	return m, nil
}

func (m *Migrator) Config() options.Config {
	return m.cfg
}

// Registry exposes the member registry, for declaring aliases in code.
func (m *Migrator) Registry() *schema.Registry {
	return m.registry
}

// NewSession prepares a single-use migration into a new value of struct type
// t. Schema errors of t are reported here.
func (m *Migrator) NewSession(t reflect.Type) (*Session, error) {
	return m.newSession(t, 0)
}

func (m *Migrator) newSession(t reflect.Type, depth int) (*Session, error) {
	st, err := m.registry.Register(t)
	if err != nil {
		return nil, err
	}

	s := &Session{m: m, typ: st, depth: depth}
	s.conv = m.converter.WithNested(s)

	return s, nil
}

// Migrate reads a document into a new value of type t and returns a pointer
// to it.
func (m *Migrator) Migrate(t reflect.Type, r io.Reader) (any, error) {
	s, err := m.NewSession(t)
	if err != nil {
		return nil, err
	}

	return s.Migrate(r)
}

// MigrateFile is Migrate for a file path.
func (m *Migrator) MigrateFile(t reflect.Type, path string) (any, error) {
	s, err := m.NewSession(t)
	if err != nil {
		return nil, err
	}

	return s.MigrateFile(path)
}

// MigrateNode migrates a subtree of an already parsed document. The node
// name is not checked and no snapshot is produced.
func (m *Migrator) MigrateNode(n node.Node, t reflect.Type) (any, error) {
	s, err := m.NewSession(t)
	if err != nil {
		return nil, err
	}

	if err := s.start(); err != nil {
		return nil, err
	}

	if err := s.run(n); err != nil {
		return nil, err
	}

	return s.Instance(), nil
}

// Typed is a session bound to the Go type T.
type Typed[T any] struct {
	*Session
}

// For prepares a session migrating into a new T. T must be a struct type.
func For[T any](m *Migrator) (*Typed[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		return nil, fmt.Errorf("%w: %s, use the struct type", schema.ErrNotStruct, t)
	}

	s, err := m.NewSession(t)
	if err != nil {
		return nil, err
	}

	return &Typed[T]{Session: s}, nil
}

func (s *Typed[T]) Migrate(r io.Reader) (*T, error) {
	if _, err := s.Session.Migrate(r); err != nil {
		return nil, err
	}

	return s.Value(), nil
}

func (s *Typed[T]) MigrateFile(path string) (*T, error) {
	if _, err := s.Session.MigrateFile(path); err != nil {
		return nil, err
	}

	return s.Value(), nil
}

// Value is the migrated instance, nil until the session has run.
func (s *Typed[T]) Value() *T {
	if !s.instance.IsValid() {
		return nil
	}

	return s.instance.Interface().(*T)
}

// Migrate reads a document into a new T.
func Migrate[T any](m *Migrator, r io.Reader) (*T, error) {
	s, err := For[T](m)
	if err != nil {
		return nil, err
	}

	return s.Migrate(r)
}

// MigrateFile reads the document at path into a new T.
func MigrateFile[T any](m *Migrator, path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Migrate[T](m, f)
}
