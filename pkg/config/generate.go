package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

const generatedHeader = `# macappbundler project file
#
# Relative paths are resolved against this file's directory. Template
# variables under [plist] replace ${Token} placeholders in
# packaging/Info.plist. Set exactly one of JVMMainClassName or
# JVMMainModuleName.

`

// StarterOptions describe the project written by init.
type StarterOptions struct {
	Name       string
	GroupID    string
	ArtifactID string
	Version    string
	MainClass  string
	MainModule string
}

// Generate renders a starter project file.
func Generate(opts StarterOptions) ([]byte, error) {
	artifactID := opts.ArtifactID
	if artifactID == "" {
		artifactID = opts.Name
	}
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	plist := map[string]string{}
	switch {
	case opts.MainModule != "":
		plist[variables.KeyMainModuleName] = opts.MainModule
	default:
		mainClass := opts.MainClass
		if mainClass == "" {
			mainClass = "com.example.Main"
		}
		plist[variables.KeyMainClassName] = mainClass
	}

	starter := Config{
		Project: types.Project{
			Name:       opts.Name,
			GroupID:    opts.GroupID,
			ArtifactID: artifactID,
			Version:    version,
			Artifact: types.Artifact{
				Path: "target/" + artifactID + "-" + version + ".jar",
			},
		},
		Plist: plist,
		DMG: diskimage.Options{
			Generate: true,
			Format:   diskimage.DefaultFormat,
			Symlinks: []diskimage.Symlink{{Name: "Applications", Target: "/Applications"}},
		},
	}

	data, err := toml.Marshal(starter)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render project file")
	}
	return append([]byte(generatedHeader), data...), nil
}
