package extract

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults — single source of truth for zero-value behavior.
const (
	// DefaultStartMarker is the heading fragment that opens the reference
	// block inside a scanned column.
	DefaultStartMarker = "specification name"

	// DefaultEndMarker is the fragment that closes the reference block.
	DefaultEndMarker = "handling content"
)

// DefaultColumns are the zero-based column indices scanned for the
// reference block (conventionally the second and third columns).
func DefaultColumns() []int { return []int{1, 2} }

// DefaultExtensions are the spreadsheet extensions picked up by Discover.
func DefaultExtensions() []string { return []string{".xlsx", ".xlsm"} }

// Sentinel errors for option and profile handling.
var (
	// ErrNoInputFiles indicates discovery found no spreadsheet files;
	// terminal for the run.
	ErrNoInputFiles = errors.New("extract: no input files found")

	// ErrBadProfile indicates an extraction profile that fails validation.
	ErrBadProfile = errors.New("extract: invalid extraction profile")
)

// Options configures a single-grid extraction pass. Fields are unexported;
// public entry points accept ...Option and resolve them internally.
type Options struct {
	columns     []int
	startMarker string
	endMarker   string
	extensions  []string
}

// Option mutates extraction options. Safe to apply repeatedly.
type Option func(*Options)

// WithColumns overrides the zero-based column indices scanned for the
// reference block. Panics on an empty set or a negative index
// (programmer error).
func WithColumns(columns ...int) Option {
	if len(columns) == 0 {
		panic("extract: WithColumns: at least one column index required")
	}
	for _, c := range columns {
		if c < 0 {
			panic("extract: WithColumns: column index must be non-negative")
		}
	}
	cols := make([]int, len(columns))
	copy(cols, columns)

	return func(o *Options) { o.columns = cols }
}

// WithStartMarker overrides the heading fragment that opens the block.
func WithStartMarker(fragment string) Option {
	if fragment == "" {
		panic("extract: WithStartMarker: fragment must be non-empty")
	}

	return func(o *Options) { o.startMarker = fragment }
}

// WithEndMarker overrides the fragment that closes the block.
func WithEndMarker(fragment string) Option {
	if fragment == "" {
		panic("extract: WithEndMarker: fragment must be non-empty")
	}

	return func(o *Options) { o.endMarker = fragment }
}

// WithExtensions overrides the spreadsheet extensions used by Discover.
func WithExtensions(extensions ...string) Option {
	if len(extensions) == 0 {
		panic("extract: WithExtensions: at least one extension required")
	}
	exts := make([]string, len(extensions))
	copy(exts, extensions)

	return func(o *Options) { o.extensions = exts }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		columns:     DefaultColumns(),
		startMarker: DefaultStartMarker,
		endMarker:   DefaultEndMarker,
		extensions:  DefaultExtensions(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Profile is the YAML-loadable extraction configuration. It mirrors
// Options one-to-one so a deployment can pin its own markers and columns
// without recompiling.
type Profile struct {
	Columns     []int    `yaml:"columns"`
	StartMarker string   `yaml:"start_marker"`
	EndMarker   string   `yaml:"end_marker"`
	Extensions  []string `yaml:"extensions"`
}

// LoadProfile reads and validates a YAML extraction profile.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err = yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, err
	}
	for _, c := range p.Columns {
		if c < 0 {
			return Profile{}, ErrBadProfile
		}
	}

	return p, nil
}

// Options converts the profile into functional options, skipping fields
// left at their zero value so defaults apply.
func (p Profile) Options() []Option {
	var opts []Option
	if len(p.Columns) > 0 {
		opts = append(opts, WithColumns(p.Columns...))
	}
	if p.StartMarker != "" {
		opts = append(opts, WithStartMarker(p.StartMarker))
	}
	if p.EndMarker != "" {
		opts = append(opts, WithEndMarker(p.EndMarker))
	}
	if len(p.Extensions) > 0 {
		opts = append(opts, WithExtensions(p.Extensions...))
	}

	return opts
}
