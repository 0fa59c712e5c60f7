package assembler

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/executor"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// LauncherLocator finds the native launcher binary.
type LauncherLocator interface {
	Locate(explicit string) (string, error)
}

// Expander turns configured resource entries into file paths.
type Expander func(patterns []string) ([]string, error)

// Assembler builds bundles
type Assembler struct {
	fs       types.FS
	exec     *executor.Executor
	launcher LauncherLocator
	expand   Expander
	logger   zerolog.Logger
}

// New creates an assembler. expand may be nil, entries are then used as
// plain paths.
func New(fs types.FS, exec *executor.Executor, launcher LauncherLocator, expand Expander) *Assembler {
	if expand == nil {
		expand = func(patterns []string) ([]string, error) { return patterns, nil }
	}
	return &Assembler{
		fs:       fs,
		exec:     exec,
		launcher: launcher,
		expand:   expand,
		logger:   logging.GetLogger("assembler"),
	}
}

// Result describes an assembly, complete or not.
type Result struct {
	AppName   string               `json:"app_name" yaml:"app_name"`
	AppDir    string               `json:"app_dir" yaml:"app_dir"`
	Mode      types.DeploymentMode `json:"mode" yaml:"mode"`
	Variables variables.Mapping    `json:"variables" yaml:"variables"`
	// Steps lists the steps that ran to completion
	Steps []string `json:"steps" yaml:"steps"`
	// Operations lists the completed operations in order
	Operations []types.Operation `json:"operations" yaml:"operations"`
	DryRun     bool              `json:"dry_run" yaml:"dry_run"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
}

// assembly is the state threaded through the steps of one run
type assembly struct {
	opts     Options
	appName  string
	layout   paths.Layout
	mode     types.DeploymentMode
	mapping  variables.Mapping
	template string
}

type step struct {
	name string
	run  func(a *Assembler, s *assembly) ([]types.Operation, error)
}

var steps = []step{
	{"clean", (*Assembler).cleanStep},
	{"skeleton", (*Assembler).skeletonStep},
	{"artifacts", (*Assembler).artifactsStep},
	{"launcher", (*Assembler).launcherStep},
	{"runtime", (*Assembler).runtimeStep},
	{"resources", (*Assembler).resourcesStep},
	{"icon", (*Assembler).iconStep},
	{"plist", (*Assembler).plistStep},
}

// Assemble builds the bundle described by opts. Configuration errors are
// returned before the filesystem is touched. On a later failure the returned
// Result holds the operations that completed.
func (a *Assembler) Assemble(opts Options) (*Result, error) {
	start := time.Now()
	done := logging.LogOperationStart(a.logger, "assemble")
	defer done()

	s, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AppName: s.appName,
		AppDir:  s.layout.AppDir(),
		Mode:    s.mode,
		DryRun:  a.exec.DryRun(),
	}

	for _, st := range steps {
		logger := a.logger.With().Str("step", st.name).Logger()

		ops, err := st.run(a, s)
		if err != nil {
			logger.Error().Err(err).Msg("Step failed")
			return a.finish(result, s, start), err
		}
		if len(ops) == 0 {
			logger.Debug().Msg("Nothing to do")
			continue
		}

		res, err := a.exec.Execute(ops)
		result.Operations = append(result.Operations, res.Completed...)
		if err != nil {
			logger.Error().Err(err).Msg("Step failed")
			return a.finish(result, s, start), err
		}
		result.Steps = append(result.Steps, st.name)
		logger.Debug().Int("operations", len(ops)).Msg("Step done")
	}

	a.logger.Info().
		Str("app", result.AppDir).
		Str("mode", string(result.Mode)).
		Int("operations", len(result.Operations)).
		Bool("dry_run", result.DryRun).
		Msg("Bundle assembled")

	return a.finish(result, s, start), nil
}

func (a *Assembler) finish(result *Result, s *assembly, start time.Time) *Result {
	result.Variables = s.mapping.Clone()
	result.Duration = time.Since(start)
	return result
}

// prepare resolves the variables and validates everything that must hold
// before any file is written.
func (a *Assembler) prepare(opts Options) (*assembly, error) {
	user := opts.Variables
	if user == nil {
		user = variables.Mapping{}
	}
	mapping := variables.Resolve(user, variables.Defaults(opts.Project))

	mode, err := variables.Mode(mapping)
	if err != nil {
		return nil, err
	}

	appDir := opts.AppDir
	if appDir == "" {
		appName := variables.AppName(mapping, opts.Project.FinalName)
		if appName == "" {
			return nil, errors.Newf(errors.ErrConfigValid,
				"cannot name the bundle, set %s or the project final name", variables.KeyBundleName)
		}
		appDir = paths.AppDir(opts.BuildDir(), appName)
	}
	if filepath.Ext(appDir) != paths.AppSuffix {
		return nil, errors.Newf(errors.ErrConfigValid, "bundle directory must end in %s: %s", paths.AppSuffix, appDir).
			WithDetail("app_dir", appDir)
	}

	if mapping.Get(variables.KeyBundleExecutable) == "" {
		return nil, errors.Newf(errors.ErrConfigValid, "%s must not be empty", variables.KeyBundleExecutable)
	}

	template := opts.Template()
	info, err := a.fs.Stat(template)
	if err != nil || info.IsDir() {
		if err == nil {
			err = os.ErrNotExist
		}
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound,
			"Info.plist template not found at %s", template).WithDetail("template", template)
	}

	a.logger.Debug().
		Str("app", appDir).
		Str("mode", string(mode)).
		Str("template", template).
		Msg("Assembly configuration validated")

	return &assembly{
		opts:     opts,
		appName:  strings.TrimSuffix(filepath.Base(appDir), paths.AppSuffix),
		layout:   paths.NewLayout(appDir),
		mode:     mode,
		mapping:  mapping,
		template: template,
	}, nil
}
