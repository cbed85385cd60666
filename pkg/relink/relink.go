package relink

import (
	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/linkops"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/platform"
	"github.com/akeeba/buildfiles/pkg/scanner"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/rs/zerolog"
)

// State is the stage a run has reached
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateMapping  State = "mapping"
	StateLinking  State = "linking"
	StateDone     State = "done"
	StateFailed   State = "failed"
)

// Decision is what a run did with one mapping
type Decision string

const (
	DecisionLinked        Decision = "linked"
	DecisionSkippedSource Decision = "skipped-missing-source"
	DecisionWouldLink     Decision = "would-link"
	DecisionFailed        Decision = "failed"
)

// Options contains options for a relink run
type Options struct {
	// SiteRoot is the site the extensions are linked into
	SiteRoot string

	// RepoRoot is the repository holding the extension sources
	RepoRoot string

	// DryRun computes every decision without touching the filesystem
	DryRun bool

	// FailFast stops at the first failed mapping
	FailFast bool

	// Config defaults to the embedded configuration
	Config *config.Config

	// Platform defaults to the host platform
	Platform *platform.Platform

	// FS is used for scanning and defaults to the real filesystem
	FS filesystem.FS

	// Linker defaults to a native linker for Platform
	Linker *linkops.Linker
}

// MappingResult is the decision taken for one mapping
type MappingResult struct {
	types.LinkMapping `yaml:",inline"`

	Decision Decision `json:"decision" yaml:"decision"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Result contains the result of a relink run
type Result struct {
	SiteRoot string `json:"siteRoot" yaml:"siteRoot"`
	RepoRoot string `json:"repoRoot" yaml:"repoRoot"`
	DryRun   bool   `json:"dryRun" yaml:"dryRun"`
	State    State  `json:"state" yaml:"state"`

	Extensions []types.ExtensionDescriptor `json:"extensions" yaml:"extensions"`
	Mappings   []MappingResult             `json:"mappings" yaml:"mappings"`

	Linked    int `json:"linked" yaml:"linked"`
	WouldLink int `json:"wouldLink" yaml:"wouldLink"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Failures returns the mappings that failed
func (r *Result) Failures() []MappingResult {
	var failed []MappingResult
	for _, m := range r.Mappings {
		if m.Decision == DecisionFailed {
			failed = append(failed, m)
		}
	}
	return failed
}

type run struct {
	opts   Options
	cfg    *config.Config
	fs     filesystem.FS
	linker *linkops.Linker
	logger zerolog.Logger
	result *Result
}

// Run scans the repository and links every extension into the site. The
// returned result is never nil; the error is set when the run failed.
func Run(opts Options) (*Result, error) {
	r, err := newRun(opts)
	if err != nil {
		return r.result, err
	}
	return r.result, r.execute()
}

func newRun(opts Options) (*run, error) {
	r := &run{
		opts:   opts,
		cfg:    opts.Config,
		fs:     opts.FS,
		linker: opts.Linker,
		logger: logging.GetLogger("relink"),
		result: &Result{DryRun: opts.DryRun, State: StateIdle},
	}

	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if r.linker == nil {
		p := platform.Detect()
		if opts.Platform != nil {
			p = *opts.Platform
		}
		r.linker = linkops.New(p)
	}
	if r.cfg == nil {
		cfg, err := config.Default()
		if err != nil {
			r.result.State = StateFailed
			return r, err
		}
		r.cfg = cfg
	}

	r.result.SiteRoot = r.linker.Canonical(opts.SiteRoot)
	r.result.RepoRoot = r.linker.Canonical(opts.RepoRoot)
	return r, nil
}

func (r *run) transition(s State) {
	r.logger.Debug().Str("from", string(r.result.State)).Str("to", string(s)).Msg("relink state")
	r.result.State = s
}

func (r *run) fail(err error) error {
	r.transition(StateFailed)
	return err
}

func (r *run) execute() error {
	res := r.result
	r.logger.Info().
		Str("siteRoot", res.SiteRoot).
		Str("repoRoot", res.RepoRoot).
		Bool("dryRun", res.DryRun).
		Msg("Starting relink")

	for _, root := range []struct{ label, given, path string }{
		{"repository", r.opts.RepoRoot, res.RepoRoot},
		{"site", r.opts.SiteRoot, res.SiteRoot},
	} {
		if root.given == "" || !filesystem.IsDir(r.fs, root.path) {
			return r.fail(errors.Newf(errors.ErrInvalidRoot, "%s root is not a directory: %s", root.label, root.path).
				WithDetail("path", root.path))
		}
	}

	r.transition(StateScanning)
	res.Extensions = scanner.New(r.fs, r.cfg.Layout).DetectAll(res.RepoRoot)
	r.logger.Info().Int("count", len(res.Extensions)).Msg("Extensions found")

	r.transition(StateMapping)
	mappings := BuildMappings(res.Extensions, res.SiteRoot, r.cfg.Relink)

	r.transition(StateLinking)
	failFast := r.opts.FailFast || r.cfg.Relink.FailFast
	for _, m := range mappings {
		mr := r.apply(m)
		res.Mappings = append(res.Mappings, mr)

		if mr.Decision == DecisionFailed && failFast {
			return r.fail(errors.Wrapf(mr.Err, errors.GetErrorCode(mr.Err), "stopping at first failure: %s", m.Target))
		}
	}

	r.transition(StateDone)
	r.logger.Info().
		Int("linked", res.Linked).
		Int("wouldLink", res.WouldLink).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("Relink complete")
	return nil
}

// apply realizes one mapping, or only decides it in dry-run mode
func (r *run) apply(m types.LinkMapping) MappingResult {
	mr := MappingResult{LinkMapping: m}
	logger := r.logger.With().Str("source", m.Source).Str("target", m.Target).Logger()

	switch {
	case !filesystem.Exists(r.fs, m.Source):
		mr.Decision = DecisionSkippedSource
		r.result.Skipped++
		logger.Info().Msg("Skipped, source missing")

	case r.opts.DryRun:
		mr.Decision = DecisionWouldLink
		r.result.WouldLink++
		logger.Info().Msg("Would link")

	default:
		if err := r.linker.CreateLink(m.Source, m.Target, m.Kind); err != nil {
			mr.Decision = DecisionFailed
			mr.Err = err
			mr.Error = err.Error()
			r.result.Failed++
			logger.Error().Err(err).Msg("Link failed")
			break
		}
		mr.Decision = DecisionLinked
		r.result.Linked++
		logger.Info().Msg("Linked")
	}

	return mr
}
