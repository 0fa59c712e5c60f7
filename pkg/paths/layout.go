package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Fixed bundle structure. These are not configurable.
const (
	ContentsDir   = "Contents"
	MacOSDir      = "MacOS"
	JavaDir       = "Java"
	ClasspathDir  = "classpath"
	ModulesDir    = "modules"
	LibDir        = "lib"
	PlugInsDir    = "PlugIns"
	RuntimeDir    = "Runtime.jre"
	ResourcesDir  = "Resources"
	InfoPlistName = "Info.plist"

	// AppSuffix is appended to the application name to form the bundle directory
	AppSuffix = ".app"

	// DefaultExtension is used for artifacts whose type cannot be inferred
	DefaultExtension = "jar"
)

// Layout resolves the fixed locations inside one application bundle.
type Layout struct {
	appDir string
}

// NewLayout returns the layout of the bundle rooted at appDir.
func NewLayout(appDir string) Layout {
	return Layout{appDir: filepath.Clean(appDir)}
}

// AppDir is the bundle root, the directory ending in .app.
func (l Layout) AppDir() string { return l.appDir }

func (l Layout) Contents() string { return filepath.Join(l.appDir, ContentsDir) }

func (l Layout) MacOS() string { return filepath.Join(l.Contents(), MacOSDir) }

// Executable is where the launcher is installed under the given name.
func (l Layout) Executable(name string) string { return filepath.Join(l.MacOS(), name) }

func (l Layout) Java() string { return filepath.Join(l.Contents(), JavaDir) }

func (l Layout) Classpath() string { return filepath.Join(l.Java(), ClasspathDir) }

func (l Layout) Modules() string { return filepath.Join(l.Java(), ModulesDir) }

// Lib holds native libraries.
func (l Layout) Lib() string { return filepath.Join(l.Java(), LibDir) }

func (l Layout) PlugIns() string { return filepath.Join(l.Contents(), PlugInsDir) }

// Runtime is the embedded runtime bundle, Runtime.jre.
func (l Layout) Runtime() string { return filepath.Join(l.PlugIns(), RuntimeDir) }

// RuntimeContents is where the runtime directory is copied to.
func (l Layout) RuntimeContents() string { return filepath.Join(l.Runtime(), ContentsDir) }

func (l Layout) Resources() string { return filepath.Join(l.Contents(), ResourcesDir) }

func (l Layout) InfoPlist() string { return filepath.Join(l.Contents(), InfoPlistName) }

// Directories lists the skeleton created for every bundle, parents first.
func (l Layout) Directories() []string {
	return []string{
		l.Contents(),
		l.MacOS(),
		l.Java(),
		l.PlugIns(),
		l.Resources(),
	}
}

// ArtifactDir returns the directory artifacts are copied to for mode.
func (l Layout) ArtifactDir(mode types.DeploymentMode) string {
	if mode == types.ModeModule {
		return l.Modules()
	}
	return l.Classpath()
}

// ArtifactPath is the destination of a inside the bundle for mode.
func (l Layout) ArtifactPath(mode types.DeploymentMode, a types.Artifact) string {
	if mode == types.ModeModule {
		return filepath.Join(l.Modules(), ModuleFileName(a))
	}
	return filepath.Join(l.Classpath(), filepath.FromSlash(RepositoryPath(a)))
}

func extension(a types.Artifact) string {
	if ext := a.Ext(); ext != "" {
		return ext
	}
	return DefaultExtension
}

// RepositoryPath returns the Maven repository style relative path of a,
// using forward slashes:
//
//	com/example/lib/1.0/lib-1.0[-classifier].jar
func RepositoryPath(a types.Artifact) string {
	name := a.ArtifactID + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	name += "." + extension(a)

	return path.Join(strings.ReplaceAll(a.GroupID, ".", "/"), a.ArtifactID, a.Version, name)
}

// ModuleFileName returns the flat modules directory name of a,
// artifactId-version.extension.
func ModuleFileName(a types.Artifact) string {
	return a.ArtifactID + "-" + a.Version + "." + extension(a)
}
