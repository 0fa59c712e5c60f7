package testutil

import (
	"path/filepath"

	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/launcher"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Fixture values of the project written by WithJavaProject
const (
	ProjectGroupID   = "com.example"
	ProjectVersion   = "1.0.0"
	ProjectMainClass = "com.example.Main"
	ProjectIcon      = "app.icns"
)

// WithJavaProject writes a classpath mode project named name with two
// dependencies, an icon, the starter Info.plist template and a launcher
// binary. The returned configuration is what loading its project file would
// produce.
func (env *TestEnvironment) WithJavaProject(name string) *config.Config {
	env.t.Helper()

	artifactID := "app"
	finalName := artifactID + "-" + ProjectVersion
	repo := env.Path("repository")
	launcherPath := env.Path("launcher", launcher.FileName)

	env.WithFileTree(env.ProjectDir, FileTree{
		"packaging": FileTree{
			"Info.plist": config.StarterTemplate(),
			ProjectIcon:  "icns",
		},
		"target": FileTree{
			finalName + ".jar": "app jar",
		},
	})
	env.WithFileTree(repo, FileTree{
		"commons-lang-2.6.jar": "commons",
		"slf4j-api-2.0.9.jar":  "slf4j",
	})
	env.WriteFile(launcherPath, "#!launcher")

	return &config.Config{
		Project: types.Project{
			Name:       name,
			GroupID:    ProjectGroupID,
			ArtifactID: artifactID,
			Version:    ProjectVersion,
			FinalName:  finalName,
			BaseDir:    env.ProjectDir,
			BuildDir:   env.BuildDir,
			Artifact: types.Artifact{
				Path:       filepath.Join(env.BuildDir, finalName+".jar"),
				GroupID:    ProjectGroupID,
				ArtifactID: artifactID,
				Version:    ProjectVersion,
			},
			Dependencies: []types.Artifact{
				{Path: filepath.Join(repo, "commons-lang-2.6.jar"), GroupID: "commons-lang", ArtifactID: "commons-lang", Version: "2.6"},
				{Path: filepath.Join(repo, "slf4j-api-2.0.9.jar"), GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9"},
			},
		},
		Plist: map[string]string{
			variables.KeyMainClassName:  ProjectMainClass,
			variables.KeyBundleIconFile: ProjectIcon,
		},
		Bundle: config.Bundle{
			Launcher: launcherPath,
		},
		DMG: diskimage.Options{
			Format:   diskimage.DefaultFormat,
			Tool:     diskimage.DefaultTool,
			Symlinks: []diskimage.Symlink{{Name: "Applications", Target: "/Applications"}},
		},
	}
}
