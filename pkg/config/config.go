// Package config loads settings for the bionet command line tools from an
// optional YAML file with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/logging"
	"github.com/dd0wney/bionet/pkg/validation"
)

// Config is the top-level configuration
type Config struct {
	// LogLevel is one of DEBUG, INFO, WARN, ERROR
	LogLevel string `yaml:"log_level"`

	// Format is the encoding used when no file extension decides it
	// (push/pull keys, stdout): json, yaml or snappy
	Format string `yaml:"format"`

	// DuplicateNames is "reject" (default) or "reuse"
	DuplicateNames string `yaml:"duplicate_names"`

	Store   StoreConfig   `yaml:"store"`
	GraphQL GraphQLConfig `yaml:"graphql"`
}

// StoreConfig selects the netstore backend
type StoreConfig struct {
	Driver string   `yaml:"driver"` // fs, s3, sqlite or memory
	Dir    string   `yaml:"dir"`
	Path   string   `yaml:"path"` // sqlite database file
	S3     S3Config `yaml:"s3"`
}

// S3Config configures the S3 / MinIO backend
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	PathStyle bool   `yaml:"path_style"`
}

// GraphQLConfig configures the HTTP query endpoint
type GraphQLConfig struct {
	Addr     string `yaml:"addr"`
	MaxDepth int    `yaml:"max_depth"`
}

// Default configuration values
const (
	DefaultLogLevel = "INFO"
	DefaultFormat   = "json"
	DefaultDriver   = "fs"
	DefaultDir      = "./networks"
	DefaultDBPath   = "./networks.db"
	DefaultAddr     = "127.0.0.1:8080"
	DefaultMaxDepth = 8
)

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		Format:         DefaultFormat,
		DuplicateNames: "reject",
		Store: StoreConfig{
			Driver: DefaultDriver,
			Dir:    DefaultDir,
			Path:   DefaultDBPath,
		},
		GraphQL: GraphQLConfig{
			Addr:     DefaultAddr,
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from BIONET_* environment variables
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("BIONET_LOG_LEVEL", &c.LogLevel)
	setString("BIONET_FORMAT", &c.Format)
	setString("BIONET_DUPLICATE_NAMES", &c.DuplicateNames)
	setString("BIONET_STORE_DRIVER", &c.Store.Driver)
	setString("BIONET_STORE_DIR", &c.Store.Dir)
	setString("BIONET_STORE_PATH", &c.Store.Path)
	setString("BIONET_S3_BUCKET", &c.Store.S3.Bucket)
	setString("BIONET_S3_REGION", &c.Store.S3.Region)
	setString("BIONET_S3_ENDPOINT", &c.Store.S3.Endpoint)
	setString("BIONET_S3_PREFIX", &c.Store.S3.Prefix)
	setString("BIONET_GRAPHQL_ADDR", &c.GraphQL.Addr)

	if v := os.Getenv("BIONET_S3_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BIONET_S3_PATH_STYLE %q: %w", v, err)
		}
		c.Store.S3.PathStyle = b
	}
	if v := os.Getenv("BIONET_GRAPHQL_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BIONET_GRAPHQL_MAX_DEPTH %q: %w", v, err)
		}
		c.GraphQL.MaxDepth = n
	}
	return nil
}

// Validate checks all fields and reports every problem at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("config").
		OneOf("log_level", strings.ToUpper(strings.TrimSpace(c.LogLevel)), []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}).
		Custom("format", func() error {
			_, err := bionet.ParseFormat(c.Format)
			return err
		}).
		OneOf("duplicate_names", strings.ToLower(c.DuplicateNames), []string{"reject", "reuse"}).
		OneOf("store.driver", c.Store.Driver, []string{"fs", "s3", "sqlite", "memory"}).
		When(c.Store.Driver == "fs", func(cv *validation.ConfigValidator) {
			cv.Required("store.dir", c.Store.Dir)
		}).
		When(c.Store.Driver == "sqlite", func(cv *validation.ConfigValidator) {
			cv.Required("store.path", c.Store.Path)
		}).
		When(c.Store.Driver == "s3", func(cv *validation.ConfigValidator) {
			cv.Required("store.s3.bucket", c.Store.S3.Bucket)
		}).
		Custom("graphql.max_depth", func() error {
			if c.GraphQL.MaxDepth < 1 {
				return fmt.Errorf("must be at least 1, got %d", c.GraphQL.MaxDepth)
			}
			return nil
		}).
		Validate()
}

// Level returns the parsed log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// EncodingFormat returns the parsed default format. Call after Validate.
func (c *Config) EncodingFormat() bionet.Format {
	f, _ := bionet.ParseFormat(c.Format)
	return f
}

// NetOptions returns the bionet options implied by the configuration
func (c *Config) NetOptions() []bionet.Option {
	policy := bionet.RejectDuplicates
	if strings.EqualFold(c.DuplicateNames, "reuse") {
		policy = bionet.ReuseExisting
	}
	return []bionet.Option{bionet.WithDuplicatePolicy(policy)}
}
