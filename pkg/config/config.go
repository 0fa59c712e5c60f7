package config

import (
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Config is the complete, immutable configuration of one run.
type Config struct {
	Project types.Project `koanf:"project" toml:"project"`
	// Plist holds the template variables, keyed by token name
	Plist   map[string]string `koanf:"plist" toml:"plist"`
	Bundle  Bundle            `koanf:"bundle" toml:"bundle"`
	DMG     diskimage.Options `koanf:"dmg" toml:"dmg"`
	Publish Publish           `koanf:"publish" toml:"publish,omitempty"`

	// File is the project file the configuration was read from
	File string `koanf:"-" toml:"-"`
}

// Bundle configures the application bundle.
type Bundle struct {
	// AppDir overrides <build_dir>/<name>.app
	AppDir string `koanf:"app_dir" toml:"app_dir,omitempty"`
	// Template overrides packaging/Info.plist
	Template string `koanf:"template" toml:"template,omitempty"`
	// Launcher is the native launcher binary
	Launcher        string   `koanf:"launcher" toml:"launcher,omitempty"`
	Runtime         string   `koanf:"runtime" toml:"runtime,omitempty"`
	Resources       []string `koanf:"resources" toml:"resources,omitempty"`
	NativeLibraries []string `koanf:"native_libraries" toml:"native_libraries,omitempty"`
	Clean           bool     `koanf:"clean" toml:"clean"`
}

// Publish configures the upload of the disk image.
type Publish struct {
	// URL is an s3:// location, empty disables publishing
	URL string `koanf:"url" toml:"url,omitempty"`
}

// Variables returns a copy of the configured template variables.
func (c *Config) Variables() variables.Mapping {
	m := make(variables.Mapping, len(c.Plist))
	for k, v := range c.Plist {
		m[k] = v
	}
	return m
}

// BuildDir is the absolute output directory.
func (c *Config) BuildDir() string {
	return c.Project.BuildDir
}
