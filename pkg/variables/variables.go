// Package variables resolves the mapping of template tokens to values that is
// substituted into Info.plist.
//
// A mapping starts from what the user configured. Derived defaults fill the
// keys the user left out, and the reserved structural keys are always set to
// the bundle's fixed layout.
package variables

import (
	"sort"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Well known keys.
const (
	KeyBundleName         = "CFBundleName"
	KeyBundleDisplayName  = "CFBundleDisplayName"
	KeyBundleIdentifier   = "CFBundleIdentifier"
	KeyBundleShortVersion = "CFBundleShortVersionString"
	KeyBundleExecutable   = "CFBundleExecutable"
	KeyBundleIconFile     = "CFBundleIconFile"

	KeyMainClassName  = "JVMMainClassName"
	KeyMainModuleName = "JVMMainModuleName"

	// Reserved, always forced to RuntimePath and NativeLibraryPath
	KeyRuntimePath       = "JVMRuntimePath"
	KeyNativeLibraryPath = "NativeLibraryPath"
)

// DefaultExecutable is the launcher name used when CFBundleExecutable is not set.
const DefaultExecutable = "JavaLauncher"

// Bundle relative values of the reserved keys.
const (
	RuntimePath       = "Contents/PlugIns/Runtime.jre"
	NativeLibraryPath = "Contents/Java/lib"
)

// Mapping maps template tokens to their values. A missing key renders as the
// empty string.
type Mapping map[string]string

// Get returns the value for key, "" when absent.
func (m Mapping) Get(key string) string {
	return m[key]
}

// Has reports whether key is present, even with an empty value.
func (m Mapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Set stores value under key, replacing any previous value.
func (m Mapping) Set(key, value string) {
	m[key] = value
}

// SetIfAbsent stores value only when key is not present yet. It reports
// whether the mapping changed.
func (m Mapping) SetIfAbsent(key, value string) bool {
	if m.Has(key) {
		return false
	}
	m[key] = value
	return true
}

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Defaults derives the values used for keys the user did not configure.
func Defaults(project types.Project) Mapping {
	identifier := project.GroupID
	if project.ArtifactID != "" {
		if identifier != "" {
			identifier += "."
		}
		identifier += project.ArtifactID
	}

	return Mapping{
		KeyBundleName:         project.Name,
		KeyBundleDisplayName:  project.Name,
		KeyBundleIdentifier:   identifier,
		KeyBundleShortVersion: project.Version,
		KeyBundleExecutable:   DefaultExecutable,
	}
}

// Resolve builds the mapping handed to the renderer. User values are kept as
// they are, defaults only fill absent keys, and the reserved keys are forced
// last. Neither input is modified.
func Resolve(user, defaults Mapping) Mapping {
	resolved := user.Clone()
	for k, v := range defaults {
		resolved.SetIfAbsent(k, v)
	}
	ForceReserved(resolved)
	return resolved
}

// ForceReserved overwrites the reserved structural keys with the fixed bundle
// paths.
func ForceReserved(m Mapping) {
	m.Set(KeyRuntimePath, RuntimePath)
	m.Set(KeyNativeLibraryPath, NativeLibraryPath)
}

// IsReserved reports whether key is always forced by Resolve.
func IsReserved(key string) bool {
	return key == KeyRuntimePath || key == KeyNativeLibraryPath
}

// Mode determines the deployment mode from the two main entry markers.
// Exactly one of them must be set.
func Mode(m Mapping) (types.DeploymentMode, error) {
	class := strings.TrimSpace(m.Get(KeyMainClassName))
	module := strings.TrimSpace(m.Get(KeyMainModuleName))

	switch {
	case class != "" && module != "":
		return "", errors.Newf(errors.ErrConfigValid,
			"%s and %s are mutually exclusive, set only one", KeyMainClassName, KeyMainModuleName).
			WithDetail(KeyMainClassName, class).
			WithDetail(KeyMainModuleName, module)
	case class != "":
		return types.ModeClasspath, nil
	case module != "":
		return types.ModeModule, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid,
			"one of %s or %s must be set", KeyMainClassName, KeyMainModuleName)
	}
}

// AppName is the bundle's directory name without the .app suffix:
// CFBundleName when set, else the project's final name.
func AppName(m Mapping, finalName string) string {
	if name := m.Get(KeyBundleName); name != "" {
		return name
	}
	return finalName
}
