package types

import (
	"path/filepath"
	"strings"
)

// Artifact is a resolved build artifact: the project's own jar or one of its
// runtime dependencies.
type Artifact struct {
	Path       string `koanf:"path" toml:"path"`
	GroupID    string `koanf:"group_id" toml:"group_id"`
	ArtifactID string `koanf:"artifact_id" toml:"artifact_id"`
	Version    string `koanf:"version" toml:"version"`
	Classifier string `koanf:"classifier" toml:"classifier,omitempty"`
	Extension  string `koanf:"extension" toml:"extension,omitempty"`
}

// Ext returns the file extension without the leading dot. An explicit
// Extension wins over the one found on Path.
func (a Artifact) Ext() string {
	if a.Extension != "" {
		return strings.TrimPrefix(a.Extension, ".")
	}
	return strings.TrimPrefix(filepath.Ext(a.Path), ".")
}

// Coordinates returns group:artifact:version for logs and messages.
func (a Artifact) Coordinates() string {
	return a.GroupID + ":" + a.ArtifactID + ":" + a.Version
}

// Project is the identity of the application being bundled together with its
// resolved artifacts. It is supplied by the project file, standing in for the
// build tool's project model.
type Project struct {
	Name       string `koanf:"name" toml:"name"`
	GroupID    string `koanf:"group_id" toml:"group_id"`
	ArtifactID string `koanf:"artifact_id" toml:"artifact_id"`
	Version    string `koanf:"version" toml:"version"`
	// FinalName is the build's output name, used when no bundle name is set
	FinalName string `koanf:"final_name" toml:"final_name,omitempty"`
	BaseDir   string `koanf:"base_dir" toml:"base_dir,omitempty"`
	BuildDir  string `koanf:"build_dir" toml:"build_dir,omitempty"`

	Artifact     Artifact   `koanf:"artifact" toml:"artifact"`
	Dependencies []Artifact `koanf:"dependencies" toml:"dependencies,omitempty"`
}

// AllArtifacts returns the project artifact followed by every dependency, the
// order in which they are copied into the bundle.
func (p Project) AllArtifacts() []Artifact {
	all := make([]Artifact, 0, len(p.Dependencies)+1)
	all = append(all, p.Artifact)
	all = append(all, p.Dependencies...)
	return all
}

// DeploymentMode selects how dependencies are laid out inside the bundle.
type DeploymentMode string

const (
	// ModeClasspath mirrors a Maven repository layout for a main class entry point
	ModeClasspath DeploymentMode = "classpath"
	// ModeModule uses a flat modules directory for a main module entry point
	ModeModule DeploymentMode = "module"
)
