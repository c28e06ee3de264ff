package kestrel

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ProjectConfig represents a kestrel.toml project configuration file.
type ProjectConfig struct {
	// LineLength is the target line width; zero means the default.
	LineLength int `toml:"line-length,omitempty"`

	// Exclude lists glob patterns (matched against base names) that are
	// skipped when formatting directories.
	Exclude []string `toml:"exclude,omitempty"`
}

// Width returns the configured line length, falling back to the default.
func (c *ProjectConfig) Width() int {
	if c == nil || c.LineLength <= 0 {
		return DefaultLineLength
	}
	return c.LineLength
}

// Excluded reports whether a file should be skipped during directory walks.
func (c *ProjectConfig) Excluded(path string) bool {
	if c == nil {
		return false
	}
	base := filepath.Base(path)
	for _, pattern := range c.Exclude {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadProjectConfig loads a kestrel.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if config.LineLength < 0 {
		return nil, errors.Errorf("%s: line-length must be positive, got %d", path, config.LineLength)
	}
	return &config, nil
}

// FindProjectConfig searches for a kestrel.toml file starting from dir and
// walking up to parent directories. Returns the path to kestrel.toml and the
// parsed config, or ("", nil, nil) if not found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "kestrel.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
