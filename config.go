package erdkit

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .erdkit.yaml configuration file. It only influences
// the CLI front-end; the conversion core never reads configuration.
type Config struct {
	// Output is the default output encoding: json, yaml, or summary.
	Output string `yaml:"output,omitempty"`

	// Pretty enables indented JSON output.
	Pretty bool `yaml:"pretty,omitempty"`

	// Files maps file-name glob patterns to a source format, letting
	// nonstandard extensions route to a parser (e.g. "*.schema": dsl).
	Files map[string]string `yaml:"files,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".erdkit.yaml", ".erdkit.yml", "erdkit.yaml", "erdkit.yml"}

// LoadConfig finds and loads the nearest .erdkit.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FormatFor returns the source format for a file path. Pattern overrides are
// checked first, then the extension table.
func (c *Config) FormatFor(filePath string) (Format, bool) {
	if c != nil {
		base := filepath.Base(filePath)

		for pattern, name := range c.Files {
			matched, _ := filepath.Match(pattern, base)
			if !matched {
				matched, _ = filepath.Match(pattern, filePath)
			}

			if matched && KnownFormat(name) {
				return Format(name), true
			}
		}
	}

	return FormatForFile(filePath)
}
