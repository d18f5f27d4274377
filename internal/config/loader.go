package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the defaults file searched for when --config is not
// given.
const DefaultConfigFile = ".ziptext.yaml"

// File mirrors the YAML defaults file. Every field is optional; pointer
// fields distinguish "absent" from an explicit zero value. Flags given on
// the command line always win over file values.
type File struct {
	Output struct {
		TextFile string `yaml:"text_file"`
		Dir      string `yaml:"dir"`
	} `yaml:"output"`
	Width     *int   `yaml:"width"`
	Artifacts *bool  `yaml:"artifacts"`
	Format    string `yaml:"format"`
	Sniff     *bool  `yaml:"sniff"`
}

// LoadConfigFile reads and parses a YAML defaults file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfigFile locates the defaults file:
//  1. if explicit is non-empty, use it directly;
//  2. otherwise look for .ziptext.yaml in the current directory;
//  3. then in the user's home directory.
//
// Returns the path if found, or empty string if not.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
