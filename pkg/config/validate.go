package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/publish"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Validate checks the configuration for everything that can be known
// without touching the filesystem. All problems are reported together.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Project.Name == "" && cfg.Plist[variables.KeyBundleName] == "" && cfg.Project.FinalName == "" {
		problems = append(problems, "project.name is required")
	}
	if cfg.Project.Version == "" {
		problems = append(problems, "project.version is required")
	}
	if cfg.Project.Artifact.Path == "" {
		problems = append(problems, "project.artifact.path is required")
	}
	for i, dep := range cfg.Project.Dependencies {
		if dep.Path == "" {
			problems = append(problems, fmt.Sprintf("project.dependencies[%d].path is required", i))
		}
		if dep.ArtifactID == "" || dep.Version == "" {
			problems = append(problems, fmt.Sprintf("project.dependencies[%d] needs artifact_id and version", i))
		}
	}

	if _, err := variables.Mode(cfg.Variables()); err != nil {
		problems = append(problems, err.Error())
	}

	for _, link := range cfg.DMG.Symlinks {
		if link.Name == "" || link.Target == "" {
			problems = append(problems, "dmg.symlinks entries need a name and a target")
		}
	}

	if cfg.Publish.URL != "" {
		if _, _, err := publish.ParseURL(cfg.Publish.URL); err != nil {
			problems = append(problems, fmt.Sprintf("publish.url: %v", err))
		}
	}

	if len(problems) > 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
			WithDetail("problems", problems)
	}
	return nil
}

// ReservedOverrides lists configured plist keys that the bundler always
// overwrites.
func ReservedOverrides(cfg *Config) []string {
	var keys []string
	for _, key := range cfg.Variables().Keys() {
		if variables.IsReserved(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
