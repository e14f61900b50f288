// Package config loads the optional pinbump configuration file.
// The configuration selects target files and excludes action references from
// pinning. Patterns are regular expressions compiled once when the file is
// read.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Version       int             `json:"version,omitempty" jsonschema:"enum=1"`
	Files         []*File         `json:"files,omitempty" jsonschema:"description=Target files. If files are passed via positional command line arguments, this is ignored"`
	IgnoreActions []*IgnoreAction `json:"ignore_actions,omitempty" yaml:"ignore_actions" jsonschema:"description=Action references that pinbump doesn't pin"`
}

type File struct {
	Pattern string `json:"pattern" jsonschema:"description=A regular expression of target file paths"`
	pattern *regexp.Regexp
}

func (f *File) Init() error {
	if f.Pattern == "" {
		return errors.New("pattern is required")
	}
	p, err := regexp.Compile(f.Pattern)
	if err != nil {
		return fmt.Errorf("compile pattern as a regular expression: %w", err)
	}
	f.pattern = p
	return nil
}

func (f *File) Match(path string) bool {
	return f.pattern.MatchString(path)
}

type IgnoreAction struct {
	Name string `json:"name" jsonschema:"description=A regular expression of action names (owner/repo)"`
	Ref  string `json:"ref,omitempty" jsonschema:"description=A regular expression of refs. If empty, all refs of the action are ignored"`
	name *regexp.Regexp
	ref  *regexp.Regexp
}

func (ia *IgnoreAction) Init() error {
	if ia.Name == "" {
		return errors.New("name is required")
	}
	n, err := regexp.Compile(ia.Name)
	if err != nil {
		return fmt.Errorf("compile name as a regular expression: %w", err)
	}
	ia.name = n
	if ia.Ref == "" {
		return nil
	}
	r, err := regexp.Compile(ia.Ref)
	if err != nil {
		return fmt.Errorf("compile ref as a regular expression: %w", err)
	}
	ia.ref = r
	return nil
}

// Match reports whether an action name and ref are excluded from pinning.
func (ia *IgnoreAction) Match(name, ref string) bool {
	if !ia.name.MatchString(name) {
		return false
	}
	if ia.ref == nil {
		return true
	}
	return ia.ref.MatchString(ref)
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".pinbump.yaml", ".github/pinbump.yaml", ".pinbump.yml", ".github/pinbump.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	p, err := getConfigPath(f.fs)
	if err != nil {
		return "", err
	}
	return p, nil
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes a configuration file into cfg.
// An empty path means no configuration file, which is fine.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	for _, file := range cfg.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize file: %w", err)
		}
	}
	for _, ia := range cfg.IgnoreActions {
		if err := ia.Init(); err != nil {
			return fmt.Errorf("initialize ignore_action: %w", err)
		}
	}
	return nil
}
