package initialize

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/executor"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Options for the init command
type Options struct {
	// Dir is the project directory, default "."
	Dir string
	config.StarterOptions
	// Force overwrites existing files
	Force  bool
	DryRun bool
	FS     types.FS
}

// Result lists the files written
type Result struct {
	Files  []string `json:"files" yaml:"files"`
	DryRun bool     `json:"dry_run" yaml:"dry_run"`
}

// Init writes a starter project file and Info.plist template into the
// project directory. Existing files are left alone unless Force is set.
func Init(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.initialize")
	logger.Debug().Str("dir", opts.Dir).Str("name", opts.Name).Msg("Executing command")

	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "application name cannot be empty")
	}
	if opts.MainClass != "" && opts.MainModule != "" {
		return nil, errors.New(errors.ErrInvalidInput, "set a main class or a main module, not both")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	project, err := config.Generate(opts.StarterOptions)
	if err != nil {
		return nil, err
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, config.ProjectFiles[0]), string(project)},
		{paths.TemplatePath(dir), config.StarterTemplate()},
	}

	var ops []types.Operation
	for _, f := range files {
		if _, err := fsys.Stat(f.path); err == nil && !opts.Force {
			return nil, errors.Newf(errors.ErrFileExists, "%s already exists, use --force to overwrite", f.path).
				WithDetail("path", f.path)
		}
		ops = append(ops,
			types.Operation{Type: types.OperationCreateDir, Target: filepath.Dir(f.path), Description: "Create " + filepath.Dir(f.path)},
			types.Operation{Type: types.OperationWriteFile, Target: f.path, Content: f.content, Description: "Write " + filepath.Base(f.path)},
		)
	}

	exec := executor.New(executor.Options{FS: fsys, DryRun: opts.DryRun})
	if _, err := exec.Execute(ops); err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	for _, f := range files {
		result.Files = append(result.Files, f.path)
	}
	logger.Info().Strs("files", result.Files).Msg("Project initialized")
	return result, nil
}
