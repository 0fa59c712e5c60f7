package assembler

import (
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Options is everything one assembly needs. It is built once per run and not
// modified by the assembler.
type Options struct {
	Project types.Project

	// Variables are the user supplied template values
	Variables variables.Mapping

	// AppDir overrides <buildDir>/<appName>.app
	AppDir string

	// TemplatePath overrides <base>/packaging/Info.plist
	TemplatePath string

	// Launcher is an explicit launcher binary, searched for when empty
	Launcher string

	// RuntimeDir is copied into the embedded runtime location when set
	RuntimeDir string

	// Resources and NativeLibraries are file paths or glob patterns
	Resources       []string
	NativeLibraries []string

	// Clean removes an existing bundle before assembly
	Clean bool
}

// BuildDir is the resolved output directory of the project.
func (o Options) BuildDir() string {
	return paths.BuildDir(o.Project.BaseDir, o.Project.BuildDir)
}

// Template returns the Info.plist template location.
func (o Options) Template() string {
	if o.TemplatePath != "" {
		return o.TemplatePath
	}
	return paths.TemplatePath(o.Project.BaseDir)
}
