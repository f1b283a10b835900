// Package config loads the projects.yml configuration file that maps project
// names to their base paths and concatenation profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Lookup failures surfaced to the CLI; mapped to exit code 1 in main.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// Profile is a named view of a project: which files to gather and where the
// concatenated document goes.
type Profile struct {
	// Pattern is a glob matched with gitignore semantics against paths
	// relative to each base path.
	Pattern string `yaml:"pattern"`

	// Extensions restricts matches by file suffix (case-insensitive).
	// Empty means all extensions.
	Extensions []string `yaml:"extensions"`

	// Output is the filename (or path) of the generated document.
	Output string `yaml:"output"`

	// Description is free-form text shown in listings.
	Description string `yaml:"description"`
}

// Merge returns a copy of the profile with per-invocation overrides applied.
// The stored configuration is never mutated.
func (p Profile) Merge(extensions []string, output string) Profile {
	merged := p
	if len(extensions) > 0 {
		merged.Extensions = append([]string(nil), extensions...)
	}
	if output != "" {
		merged.Output = output
	}
	return merged
}

// Project is a named unit of one or more base directories plus profiles.
type Project struct {
	Description string             `yaml:"description"`
	BasePaths   []string           `yaml:"base_paths"`
	Profiles    map[string]Profile `yaml:"profiles"`
}

// Profile returns the named profile.
func (p *Project) Profile(name string) (Profile, error) {
	prof, ok := p.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q: %w", name, ErrProfileNotFound)
	}
	return prof, nil
}

// DefaultProfileName picks the profile used when none is requested:
// "default" if present, then "current", otherwise the lexicographically
// first name so the choice is deterministic.
func (p *Project) DefaultProfileName() (string, error) {
	if len(p.Profiles) == 0 {
		return "", fmt.Errorf("no profiles defined: %w", ErrProfileNotFound)
	}
	for _, name := range []string{"default", "current"} {
		if _, ok := p.Profiles[name]; ok {
			return name, nil
		}
	}
	names := p.ProfileNames()
	return names[0], nil
}

// ProfileNames returns all profile names sorted.
func (p *Project) ProfileNames() []string {
	names := make([]string, 0, len(p.Profiles))
	for name := range p.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Settings holds run-wide knobs shared by every project.
type Settings struct {
	// MaxFileSizeKB caps how large a file may be before its content is
	// replaced by a placeholder. Zero means the default.
	MaxFileSizeKB int `yaml:"max_file_size_kb"`

	// MaxWorkers bounds the concurrent file reads. Zero or negative
	// falls back to the CPU count.
	MaxWorkers int `yaml:"max_workers"`

	// OutputDir, when set, is prepended to relative profile output names.
	OutputDir string `yaml:"output_dir"`

	// GlobalIgnore is an optional path to a gitignore-style file applied
	// before each base path's project-specific ignore file.
	GlobalIgnore string `yaml:"global_ignore"`
}

// Config is the full parsed configuration. Loaded once at startup and
// treated as immutable for the remainder of the run.
type Config struct {
	Projects map[string]Project `yaml:"projects"`
	Settings Settings           `yaml:"settings"`
}

// DefaultMaxFileSizeKB applies when settings leave the cap unset.
const DefaultMaxFileSizeKB = 5 * 1024

// Project returns the named project.
func (c *Config) Project(name string) (*Project, error) {
	proj, ok := c.Projects[name]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", name, ErrProjectNotFound)
	}
	return &proj, nil
}

// ProjectNames returns all configured project names sorted.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads and validates the configuration file. A missing or malformed
// file is fatal; there is nothing sensible to do without a project map.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Settings.MaxFileSizeKB <= 0 {
		cfg.Settings.MaxFileSizeKB = DefaultMaxFileSizeKB
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Projects) == 0 {
		return errors.New("config defines no projects")
	}
	for name, proj := range c.Projects {
		if len(proj.BasePaths) == 0 {
			return fmt.Errorf("project %q: no base_paths defined", name)
		}
		if len(proj.Profiles) == 0 {
			return fmt.Errorf("project %q: no profiles defined", name)
		}
		for profName, prof := range proj.Profiles {
			if prof.Pattern == "" {
				return fmt.Errorf("project %q, profile %q: empty pattern", name, profName)
			}
			if prof.Output == "" {
				return fmt.Errorf("project %q, profile %q: empty output", name, profName)
			}
		}
	}
	return nil
}
