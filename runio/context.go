package runio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// stampLayout names the per-run output directory.
const stampLayout = "20060102_150405"

// RunContext identifies one pipeline run: where its artifacts go, when it
// started, and a unique id that survives into the metadata and summary
// records. Components receive it explicitly; there is no package-level
// current run.
type RunContext struct {
	// Root is the output directory all runs nest under.
	Root string

	// Stamp is the run start time; it names the run directory.
	Stamp time.Time

	// ID is a nanoid distinguishing runs that share a timestamp.
	ID string
}

// NewRunContext stamps a fresh run under root.
func NewRunContext(root string) (*RunContext, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	return &RunContext{Root: root, Stamp: time.Now(), ID: id}, nil
}

// ErrBadRunDir indicates a resume target whose name is not a run
// directory stamp.
var ErrBadRunDir = errors.New("runio: directory name is not a run stamp")

// ResumeRunContext reconstructs a RunContext from an existing run
// directory, so a later invocation can pick up where an interrupted run
// stopped (see Progress). The run gets a fresh id; the original one lives
// in the artifacts already written.
func ResumeRunContext(dir string) (*RunContext, error) {
	stamp, err := time.ParseInLocation(stampLayout, filepath.Base(dir), time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadRunDir, filepath.Base(dir))
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	return &RunContext{Root: filepath.Dir(dir), Stamp: stamp, ID: id}, nil
}

// Dir is the per-run output directory.
func (rc *RunContext) Dir() string {
	return filepath.Join(rc.Root, rc.Stamp.Format(stampLayout))
}

// Path joins name onto the run directory.
func (rc *RunContext) Path(name string) string {
	return filepath.Join(rc.Dir(), name)
}

// EnsureDir creates the run directory if it does not exist yet.
func (rc *RunContext) EnsureDir() error {
	return os.MkdirAll(rc.Dir(), 0o755)
}

// Progress records which pipeline stages a run has completed, so an
// interrupted batch can resume without redoing finished work.
type Progress struct {
	Completed map[string]time.Time `json:"completed"`
}

// Done reports whether stage has been marked complete.
func (p *Progress) Done(stage string) bool {
	_, ok := p.Completed[stage]

	return ok
}

// Mark records stage as complete now.
func (p *Progress) Mark(stage string) {
	if p.Completed == nil {
		p.Completed = make(map[string]time.Time)
	}
	p.Completed[stage] = time.Now()
}

const progressFile = "progress.json"

// LoadProgress reads the run's progress record; a missing file is an
// empty record, not an error.
func (rc *RunContext) LoadProgress() (*Progress, error) {
	raw, err := os.ReadFile(rc.Path(progressFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Progress{}, nil
	}
	if err != nil {
		return nil, err
	}
	var p Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// SaveProgress persists the progress record into the run directory.
func (rc *RunContext) SaveProgress(p *Progress) error {
	return writeJSON(rc.Path(progressFile), p)
}

// writeJSON marshals v with two-space indentation, the shape a human
// editing the file expects.
func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
