package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Project relative locations
const (
	// PackagingDir holds the Info.plist template and the icon
	PackagingDir = "packaging"

	// DefaultBuildDir is used when the project does not set one
	DefaultBuildDir = "target"

	// StagingDirName is the disk image staging directory under the build dir
	StagingDirName = "bundle"

	// DMGSuffix is the extension of disk image files
	DMGSuffix = ".dmg"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for macappbundler
	EnvDataDir = "MACAPPBUNDLER_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// AppDirName is the directory name used under XDG base directories
	AppDirName = "macappbundler"
)

// TemplatePath is the Info.plist template of the project at baseDir.
func TemplatePath(baseDir string) string {
	return filepath.Join(baseDir, PackagingDir, "Info.plist")
}

// IconPath is where the configured icon file is read from.
func IconPath(baseDir, icon string) string {
	return filepath.Join(baseDir, PackagingDir, icon)
}

// BuildDir resolves buildDir against baseDir. An empty buildDir means
// <baseDir>/target.
func BuildDir(baseDir, buildDir string) string {
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	buildDir = ExpandHome(buildDir)
	if filepath.IsAbs(buildDir) {
		return filepath.Clean(buildDir)
	}
	return filepath.Join(baseDir, buildDir)
}

// AppDir is <buildDir>/<appName>.app.
func AppDir(buildDir, appName string) string {
	return filepath.Join(buildDir, appName+AppSuffix)
}

// StagingDir is the disk image staging directory.
func StagingDir(buildDir string) string {
	return filepath.Join(buildDir, StagingDirName)
}

// DataDir is the macappbundler XDG data directory, honouring
// MACAPPBUNDLER_DATA_DIR.
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// DataSearchPaths returns rel joined to the data directory and then to every
// XDG data dir, in lookup order.
func DataSearchPaths(rel string) []string {
	paths := []string{filepath.Join(DataDir(), rel)}
	for _, dir := range xdg.DataDirs {
		paths = append(paths, filepath.Join(dir, AppDirName, rel))
	}
	return paths
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
