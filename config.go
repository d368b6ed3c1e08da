package graphcat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the .graphcat.yaml configuration file.
type Config struct {
	// Sources is the path of the source file describing tables, labels and
	// relationship types. Relative paths are resolved against the config
	// file's directory.
	Sources string `yaml:"sources,omitempty"`

	// Neo4j connection used by introspection.
	Neo4j *Neo4jConfig `yaml:"neo4j,omitempty"`

	// Log settings for the command line tools.
	Log LogConfig `yaml:"log,omitempty"`

	// Nodes maps node labels onto source columns.
	Nodes []NodeMapping `yaml:"nodes,omitempty" validate:"dive"`

	// Relationships maps relationship types onto source columns.
	Relationships []RelationshipMapping `yaml:"relationships,omitempty" validate:"dive"`
}

// Neo4jConfig holds Neo4j connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri" validate:"required"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`

	// Timeout bounds a full introspection run. Zero means DefaultNeo4jTimeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultNeo4jTimeout is used when Neo4jConfig.Timeout is unset.
const DefaultNeo4jTimeout = 30 * time.Second

// EffectiveTimeout returns the configured timeout or the default.
func (c *Neo4jConfig) EffectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultNeo4jTimeout
	}

	return c.Timeout
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".graphcat.yaml", ".graphcat.yml", "graphcat.yaml", "graphcat.yml"}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads the nearest config file at or above dir. It returns the
// validated config and the directory holding it, against which relative
// paths in the config resolve.
//
// A directory holding more than one of DefaultConfigNames is rejected with
// ErrAmbiguousConfig rather than picking one. A config that fails to parse
// or validate is an error; the search does not continue past it.
func LoadConfig(dir string) (*Config, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}

	for dir := absDir; ; {
		path, err := configIn(dir)
		if err != nil {
			return nil, "", err
		}

		if path != "" {
			cfg, err := LoadConfigFile(path)
			if err != nil {
				return nil, "", err
			}

			return cfg, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", ErrConfigNotFound
		}

		dir = parent
	}
}

// configIn returns the config file in dir, or "" if there is none.
func configIn(dir string) (string, error) {
	var found []string

	for _, name := range DefaultConfigNames {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			found = append(found, path)
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousConfig, strings.Join(found, ", "))
	}
}

// LoadConfigFile loads and validates a config from a specific path.
// Errors name the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes and validates config YAML.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and rejects duplicate mappings.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	labels := make(map[string]struct{}, len(c.Nodes))
	for _, m := range c.Nodes {
		if _, dup := labels[m.Label]; dup {
			return fmt.Errorf("%w: label %q", ErrDuplicateMapping, m.Label)
		}

		labels[m.Label] = struct{}{}
	}

	types := make(map[string]struct{}, len(c.Relationships))
	for _, m := range c.Relationships {
		if _, dup := types[m.RelationshipType]; dup {
			return fmt.Errorf("%w: relationship type %q", ErrDuplicateMapping, m.RelationshipType)
		}

		types[m.RelationshipType] = struct{}{}
	}

	return nil
}

// NodeMapping returns a copy of the configured mapping for label.
func (c *Config) NodeMapping(label string) (NodeMapping, bool) {
	for _, m := range c.Nodes {
		if m.Label == label {
			return m.Clone(), true
		}
	}

	return NodeMapping{}, false
}

// RelationshipMapping returns a copy of the configured mapping for relType.
func (c *Config) RelationshipMapping(relType string) (RelationshipMapping, bool) {
	for _, m := range c.Relationships {
		if m.RelationshipType == relType {
			return m.Clone(), true
		}
	}

	return RelationshipMapping{}, false
}

// SourcesPath resolves Sources against the directory holding the config.
// It returns "" when no source file is configured.
func (c *Config) SourcesPath(configDir string) string {
	if c.Sources == "" {
		return ""
	}

	if filepath.IsAbs(c.Sources) {
		return filepath.Clean(c.Sources)
	}

	return filepath.Join(configDir, c.Sources)
}
