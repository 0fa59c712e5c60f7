package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
)

// EnvPrefix is the prefix of configuration environment variables. Nested
// keys are separated by a double underscore: MACAPPBUNDLER_DMG__GENERATE.
const EnvPrefix = "MACAPPBUNDLER_"

// ProjectFiles are the file names searched for, in order.
var ProjectFiles = []string{"macappbundler.toml", ".macappbundler.toml", "macappbundler.yaml", "macappbundler.yml"}

// LoadOptions control where configuration is read from.
type LoadOptions struct {
	// Path is an explicit project file, it must exist
	Path string
	// Dir is searched for ProjectFiles when Path is empty, default "."
	Dir string
	// Overrides are flattened keys from the command line, applied last
	Overrides map[string]interface{}
	// AllowMissing accepts a missing project file
	AllowMissing bool
}

// FindProjectFile returns the first project file present in dir.
func FindProjectFile(dir string) (string, bool) {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads the layered configuration:
//  1. embedded defaults
//  2. the project file
//  3. MACAPPBUNDLER_ environment variables
//  4. command line overrides
//
// Relative paths in the result are resolved against the project base
// directory, which defaults to the directory of the project file.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load the project file
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	path := opts.Path
	if path != "" {
		path = paths.ExpandHome(path)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "project file not found: %s", path).
				WithDetail("path", path)
		}
	} else if found, ok := FindProjectFile(dir); ok {
		path = found
	} else if !opts.AllowMissing {
		return nil, errors.Newf(errors.ErrConfigLoad,
			"no project file found in %s, expected one of %s", dir, strings.Join(ProjectFiles, ", ")).
			WithDetail("dir", dir)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded project file")
	}

	// 3. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load command line overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Post-process
	cfg.File = path
	if err := postProcess(&cfg, dir); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("project", cfg.Project.Name).
		Str("base_dir", cfg.Project.BaseDir).
		Str("build_dir", cfg.Project.BuildDir).
		Msg("Configuration loaded")
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps MACAPPBUNDLER_DMG__FILE_NAME to dmg.file_name. Template
// variables keep their case: MACAPPBUNDLER_PLIST__CFBundleName.
func envKey(s string) string {
	parts := strings.Split(strings.TrimPrefix(s, EnvPrefix), "__")
	if len(parts) < 2 {
		// Not a configuration key, e.g. MACAPPBUNDLER_LAUNCHER
		return ""
	}
	if strings.EqualFold(parts[0], "plist") && len(parts) == 2 {
		return "plist." + parts[1]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// postProcess fills derived values and makes every path absolute.
func postProcess(cfg *Config, dir string) error {
	base := cfg.Project.BaseDir
	if base == "" {
		if cfg.File != "" {
			base = filepath.Dir(cfg.File)
		} else {
			base = dir
		}
	} else if !filepath.IsAbs(paths.ExpandHome(base)) && cfg.File != "" {
		base = filepath.Join(filepath.Dir(cfg.File), base)
	}
	abs, err := filepath.Abs(paths.ExpandHome(base))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", base)
	}
	cfg.Project.BaseDir = abs
	cfg.Project.BuildDir = paths.BuildDir(abs, cfg.Project.BuildDir)

	resolve := func(p string) string {
		if p == "" {
			return p
		}
		p = paths.ExpandHome(p)
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(abs, p)
	}

	// The project artifact inherits the project coordinates
	a := &cfg.Project.Artifact
	if a.GroupID == "" {
		a.GroupID = cfg.Project.GroupID
	}
	if a.ArtifactID == "" {
		a.ArtifactID = cfg.Project.ArtifactID
	}
	if a.Version == "" {
		a.Version = cfg.Project.Version
	}
	a.Path = resolve(a.Path)
	for i := range cfg.Project.Dependencies {
		cfg.Project.Dependencies[i].Path = resolve(cfg.Project.Dependencies[i].Path)
	}

	if cfg.Project.FinalName == "" && cfg.Project.ArtifactID != "" {
		cfg.Project.FinalName = cfg.Project.ArtifactID + "-" + cfg.Project.Version
	}

	cfg.Bundle.AppDir = resolve(cfg.Bundle.AppDir)
	cfg.Bundle.Template = resolve(cfg.Bundle.Template)
	cfg.Bundle.Launcher = resolve(cfg.Bundle.Launcher)
	cfg.Bundle.Runtime = resolve(cfg.Bundle.Runtime)
	for i := range cfg.Bundle.Resources {
		cfg.Bundle.Resources[i] = resolve(cfg.Bundle.Resources[i])
	}
	for i := range cfg.Bundle.NativeLibraries {
		cfg.Bundle.NativeLibraries[i] = resolve(cfg.Bundle.NativeLibraries[i])
	}
	for i := range cfg.DMG.ExtraFiles {
		cfg.DMG.ExtraFiles[i] = resolve(cfg.DMG.ExtraFiles[i])
	}

	if cfg.Plist == nil {
		cfg.Plist = map[string]string{}
	}
	return nil
}
