package verify

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/macappbundler/pkg/commands/internal"
	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/plist"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Options for the verify command
type Options struct {
	// Config locates the bundle when AppDir is empty
	Config *config.Config
	AppDir string
	FS     types.FS
}

// CheckStatus is the outcome of one check
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckSkipped CheckStatus = "skipped"
)

// Check is one verified property of the bundle
type Check struct {
	Name    string      `json:"name" yaml:"name"`
	Path    string      `json:"path,omitempty" yaml:"path,omitempty"`
	Status  CheckStatus `json:"status" yaml:"status"`
	Message string      `json:"message" yaml:"message"`
}

// Result of a verification
type Result struct {
	AppDir  string               `json:"app_dir" yaml:"app_dir"`
	Mode    types.DeploymentMode `json:"mode,omitempty" yaml:"mode,omitempty"`
	Checks  []Check              `json:"checks" yaml:"checks"`
	Entries []plist.Entry        `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Failed returns the checks that did not pass.
func (r *Result) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if c.Status == CheckFailed {
			failed = append(failed, c)
		}
	}
	return failed
}

func (r *Result) add(name, path string, status CheckStatus, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Name: name, Path: path, Status: status, Message: fmt.Sprintf(format, args...)})
}

// Verify inspects an assembled bundle. Every check runs; when any fails the
// result is returned together with a BUNDLE_INVALID error.
func Verify(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.verify")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	appDir := opts.AppDir
	if appDir == "" {
		if opts.Config == nil {
			return nil, errors.New(errors.ErrInvalidInput, "verify requires a bundle path or a configuration")
		}
		var err error
		if _, appDir, err = internal.AppLocation(opts.Config); err != nil {
			return nil, err
		}
	}
	logger.Debug().Str("app_dir", appDir).Msg("Executing command")

	info, err := fsys.Stat(appDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrBundleNotFound, "application bundle not found: %s", appDir).
			WithDetail("app_dir", appDir)
	}

	layout := paths.NewLayout(appDir)
	result := &Result{AppDir: appDir}

	doc, err := plist.Inspect(fsys, layout.InfoPlist())
	if err != nil {
		result.add("Info.plist", layout.InfoPlist(), CheckFailed, "%v", err)
		return result, invalid(result)
	}
	result.Entries = doc.Entries
	result.add("Info.plist", layout.InfoPlist(), CheckPassed, "%d keys", len(doc.Entries))

	checkExecutable(fsys, layout, doc, result)
	checkIcon(fsys, layout, doc, result)
	checkEntryPoint(fsys, layout, doc, result)
	checkRuntime(fsys, layout, doc, result)

	if err := invalid(result); err != nil {
		logger.Warn().Int("failed", len(result.Failed())).Msg("Bundle verification failed")
		return result, err
	}
	logger.Info().Str("app_dir", appDir).Msg("Bundle verified")
	return result, nil
}

func invalid(result *Result) error {
	failed := result.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(failed))
	for _, c := range failed {
		names = append(names, c.Name)
	}
	return errors.Newf(errors.ErrBundleInvalid, "bundle %s failed %d check(s)", result.AppDir, len(failed)).
		WithDetail("checks", names)
}

func checkExecutable(fsys types.FS, layout paths.Layout, doc *plist.Document, result *Result) {
	name, _ := doc.Get(variables.KeyBundleExecutable)
	if name == "" {
		result.add("executable", "", CheckFailed, "%s is not set", variables.KeyBundleExecutable)
		return
	}
	path := layout.Executable(name)
	info, err := fsys.Stat(path)
	switch {
	case err != nil:
		result.add("executable", path, CheckFailed, "missing")
	case info.Mode()&0111 == 0:
		result.add("executable", path, CheckFailed, "not executable (mode %s)", info.Mode().Perm())
	default:
		result.add("executable", path, CheckPassed, "%s", name)
	}
}

func checkIcon(fsys types.FS, layout paths.Layout, doc *plist.Document, result *Result) {
	icon, _ := doc.Get(variables.KeyBundleIconFile)
	if icon == "" {
		result.add("icon", "", CheckSkipped, "no icon declared")
		return
	}
	path := filepath.Join(layout.Resources(), icon)
	if !isFile(fsys, path) {
		result.add("icon", path, CheckFailed, "declared icon is missing")
		return
	}
	result.add("icon", path, CheckPassed, "%s", icon)
}

func checkEntryPoint(fsys types.FS, layout paths.Layout, doc *plist.Document, result *Result) {
	m := variables.Mapping{}
	for _, key := range []string{variables.KeyMainClassName, variables.KeyMainModuleName} {
		if v, ok := doc.Get(key); ok {
			m.Set(key, v)
		}
	}
	mode, err := variables.Mode(m)
	if err != nil {
		result.add("entry point", "", CheckFailed, "%v", err)
		return
	}
	result.Mode = mode

	dir := layout.ArtifactDir(mode)
	entries, err := fsys.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		result.add("entry point", dir, CheckFailed, "%s mode but no artifacts found", mode)
		return
	}
	result.add("entry point", dir, CheckPassed, "%s mode", mode)
}

func checkRuntime(fsys types.FS, layout paths.Layout, doc *plist.Document, result *Result) {
	if _, err := fsys.Stat(layout.RuntimeContents()); err != nil {
		result.add("runtime", layout.Runtime(), CheckSkipped, "no embedded runtime, the system Java is used")
		return
	}
	declared, _ := doc.Get(variables.KeyRuntimePath)
	if declared != variables.RuntimePath {
		result.add("runtime", layout.Runtime(), CheckFailed, "%s is %q, expected %q",
			variables.KeyRuntimePath, declared, variables.RuntimePath)
		return
	}
	result.add("runtime", layout.Runtime(), CheckPassed, "embedded")
}

func isFile(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

