// Package options holds the migrator configuration: defaults, functional
// options, and loading from a YAML file and the environment.
package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"xml-migrator/primitive"
	"xml-migrator/utils"
)

const (
	DefaultMaxDepth = 64
	MaxDepthLimit   = 4096
	DefaultIndent   = "  "
)

var ErrInvalidConfig = errors.New("invalid migrator configuration")

// Config controls a migrator. The zero value is not usable, start from Default.
type Config struct {
	// Categories are the textual forms primitive conversion accepts.
	Categories Categories `yaml:"categories" env:"XML_MIGRATOR_CATEGORIES"`
	// MaxDepth bounds nested session recursion.
	MaxDepth int `yaml:"max_depth" env:"XML_MIGRATOR_MAX_DEPTH"`
	// Root overrides the expected document root name of the top-level type.
	Root string `yaml:"root" env:"XML_MIGRATOR_ROOT"`
	// Indent is used for the canonical re-serialization. Empty means compact.
	Indent string `yaml:"indent" env:"XML_MIGRATOR_INDENT"`
	// Mapping is an optional path to an alias mapping file.
	Mapping string `yaml:"mapping" env:"XML_MIGRATOR_MAPPING"`
}

type Option func(*Config)

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Categories: Categories(primitive.CategoryAll),
		MaxDepth:   DefaultMaxDepth,
		Indent:     DefaultIndent,
	}
}

// New applies opts on top of Default.
func New(opts ...Option) Config {
	cfg := Default()
	cfg.Apply(opts...)

	return cfg
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func WithCategories(categories primitive.CategoryEnum) Option {
	return func(c *Config) { c.Categories = Categories(categories) }
}

func WithMaxDepth(depth int) Option {
	return func(c *Config) { c.MaxDepth = depth }
}

func WithRoot(name string) Option {
	return func(c *Config) { c.Root = name }
}

func WithIndent(indent string) Option {
	return func(c *Config) { c.Indent = indent }
}

func WithMapping(path string) Option {
	return func(c *Config) { c.Mapping = path }
}

// Validate reports configuration values the migrator cannot work with.
func (c Config) Validate() error {
	if !utils.IsInRange(1, c.MaxDepth, MaxDepthLimit) {
		return fmt.Errorf("%w: max_depth %d is outside [1, %d]", ErrInvalidConfig, c.MaxDepth, MaxDepthLimit)
	}

	return nil
}

// LoadFile reads a YAML configuration file. Missing keys keep their defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML configuration on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with XML_MIGRATOR_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}
