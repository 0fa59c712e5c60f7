package assembler

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/executor"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

const testTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
  <key>CFBundleName</key><string>${CFBundleName}</string>
  <key>CFBundleIdentifier</key><string>${CFBundleIdentifier}</string>
  <key>CFBundleExecutable</key><string>${CFBundleExecutable}</string>
  <key>CFBundleIconFile</key><string>${CFBundleIconFile}</string>
  <key>JVMMainClassName</key><string>${JVMMainClassName}</string>
  <key>JVMRuntimePath</key><string>${JVMRuntimePath}</string>
</dict>
</plist>
`

type fakeLocator struct {
	path string
	err  error
}

func (f fakeLocator) Locate(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return f.path, f.err
}

type fixture struct {
	fs   types.FS
	opts Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := filesystem.NewMemFS()

	files := map[string]string{
		"/proj/packaging/Info.plist":  testTemplate,
		"/proj/packaging/app.icns":    "icon",
		"/m2/foo-1.0.jar":             "foo",
		"/m2/dep-a-2.0.jar":           "a",
		"/m2/dep-b-3.1.jar":           "b",
		"/opt/launcher/JavaLauncher":  "launcher",
		"/jdk/Contents/Home/bin/java": "java",
		"/proj/extra/readme.txt":      "readme",
		"/proj/native/libfoo.dylib":   "lib",
	}
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(parent(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}

	return &fixture{
		fs: fs,
		opts: Options{
			Project: types.Project{
				Name:       "Foo",
				GroupID:    "com.x",
				ArtifactID: "foo",
				Version:    "1.0",
				FinalName:  "foo-1.0",
				BaseDir:    "/proj",
				Artifact:   types.Artifact{Path: "/m2/foo-1.0.jar", GroupID: "com.x", ArtifactID: "foo", Version: "1.0"},
				Dependencies: []types.Artifact{
					{Path: "/m2/dep-a-2.0.jar", GroupID: "org.a", ArtifactID: "dep-a", Version: "2.0"},
					{Path: "/m2/dep-b-3.1.jar", GroupID: "org.b", ArtifactID: "dep-b", Version: "3.1"},
				},
			},
			Variables: variables.Mapping{variables.KeyMainClassName: "com.x.foo.Main"},
		},
	}
}

func parent(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "/"
}

func (f *fixture) assembler(dryRun bool) *Assembler {
	exec := executor.New(executor.Options{FS: f.fs, DryRun: dryRun})
	return New(f.fs, exec, fakeLocator{path: "/opt/launcher/JavaLauncher"}, nil)
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	content, err := f.fs.ReadFile(path)
	require.NoError(t, err, path)
	return string(content)
}

func (f *fixture) exists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}

func TestAssemble_Classpath(t *testing.T) {
	f := newFixture(t)

	result, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)

	app := "/proj/target/Foo.app"
	assert.Equal(t, app, result.AppDir)
	assert.Equal(t, "Foo", result.AppName)
	assert.Equal(t, types.ModeClasspath, result.Mode)

	assert.Equal(t, "foo", f.read(t, app+"/Contents/Java/classpath/com/x/foo/1.0/foo-1.0.jar"))
	assert.Equal(t, "a", f.read(t, app+"/Contents/Java/classpath/org/a/dep-a/2.0/dep-a-2.0.jar"))
	assert.Equal(t, "b", f.read(t, app+"/Contents/Java/classpath/org/b/dep-b/3.1/dep-b-3.1.jar"))
	assert.False(t, f.exists(app+"/Contents/Java/modules"))

	info, err := f.fs.Stat(app + "/Contents/MacOS/JavaLauncher")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	for _, dir := range []string{"MacOS", "Java", "PlugIns", "Resources"} {
		assert.True(t, f.exists(app+"/Contents/"+dir), dir)
	}

	plist := f.read(t, app+"/Contents/Info.plist")
	assert.Contains(t, plist, "<string>Foo</string>")
	assert.Contains(t, plist, "<string>com.x.foo</string>")
	assert.Contains(t, plist, "<string>JavaLauncher</string>")
	assert.Contains(t, plist, "<key>CFBundleIconFile</key><string></string>")
	assert.Contains(t, plist, "<string>Contents/PlugIns/Runtime.jre</string>")
	assert.NotContains(t, plist, "${")

	assert.Equal(t, []string{"skeleton", "artifacts", "launcher", "plist"}, result.Steps)
	for _, op := range result.Operations {
		assert.Equal(t, types.StatusDone, op.Status)
	}
}

func TestAssemble_ModuleLayout(t *testing.T) {
	f := newFixture(t)
	f.opts.Variables = variables.Mapping{variables.KeyMainModuleName: "com.x.foo/com.x.foo.Main"}
	// Same artifactId and version as dep-a under another group
	f.opts.Project.Dependencies = append(f.opts.Project.Dependencies,
		types.Artifact{Path: "/m2/dep-b-3.1.jar", GroupID: "org.other", ArtifactID: "dep-a", Version: "2.0"})

	result, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)
	assert.Equal(t, types.ModeModule, result.Mode)

	modules := "/proj/target/Foo.app/Contents/Java/modules/"
	assert.Equal(t, "foo", f.read(t, modules+"foo-1.0.jar"))
	assert.Equal(t, "b", f.read(t, modules+"dep-b-3.1.jar"))
	// Last write wins
	assert.Equal(t, "b", f.read(t, modules+"dep-a-2.0.jar"))

	entries, err := f.fs.ReadDir(modules)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.False(t, f.exists("/proj/target/Foo.app/Contents/Java/classpath"))
}

func TestAssemble_OptionalParts(t *testing.T) {
	f := newFixture(t)
	f.opts.Variables[variables.KeyBundleIconFile] = "app.icns"
	f.opts.Variables[variables.KeyBundleExecutable] = "Foo"
	f.opts.RuntimeDir = "/jdk"
	f.opts.Resources = []string{"/proj/extra/readme.txt"}
	f.opts.NativeLibraries = []string{"/proj/native/libfoo.dylib"}

	result, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)

	app := "/proj/target/Foo.app/Contents/"
	assert.Equal(t, "java", f.read(t, app+"PlugIns/Runtime.jre/Contents/Contents/Home/bin/java"))
	assert.Equal(t, "readme", f.read(t, app+"Resources/readme.txt"))
	assert.Equal(t, "lib", f.read(t, app+"Java/lib/libfoo.dylib"))
	assert.Equal(t, "icon", f.read(t, app+"Resources/app.icns"))
	assert.True(t, f.exists(app+"MacOS/Foo"))

	plist := f.read(t, app+"Info.plist")
	assert.Contains(t, plist, "<key>CFBundleIconFile</key><string>app.icns</string>")
	assert.Equal(t, "app.icns", result.Variables.Get(variables.KeyBundleIconFile))
	assert.Contains(t, result.Steps, "runtime")
	assert.Contains(t, result.Steps, "icon")

	// Caller's mapping is left alone
	assert.False(t, f.opts.Variables.Has(variables.KeyRuntimePath))
}

func TestAssemble_MainMarkerErrors(t *testing.T) {
	tests := []struct {
		name    string
		mapping variables.Mapping
	}{
		{"both set", variables.Mapping{
			variables.KeyMainClassName:  "com.x.Main",
			variables.KeyMainModuleName: "com.x/com.x.Main",
		}},
		{"neither set", variables.Mapping{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.opts.Variables = tt.mapping

			result, err := f.assembler(false).Assemble(f.opts)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsConfiguration(err))

			// Nothing was written
			assert.False(t, f.exists("/proj/target"))
		})
	}
}

func TestAssemble_MissingTemplate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.Remove("/proj/packaging/Info.plist"))

	_, err := f.assembler(false).Assemble(f.opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	assert.False(t, f.exists("/proj/target"))
}

func TestAssemble_MissingResourceAborts(t *testing.T) {
	f := newFixture(t)
	f.opts.Resources = []string{"/proj/extra/readme.txt", "/proj/extra/missing.txt"}

	result, err := f.assembler(false).Assemble(f.opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.True(t, errors.IsMissingResource(err))

	// Earlier steps stay on disk, later ones never ran
	require.NotNil(t, result)
	assert.Equal(t, []string{"skeleton", "artifacts", "launcher"}, result.Steps)
	assert.True(t, f.exists("/proj/target/Foo.app/Contents/MacOS/JavaLauncher"))
	assert.False(t, f.exists("/proj/target/Foo.app/Contents/Resources/readme.txt"))
	assert.False(t, f.exists("/proj/target/Foo.app/Contents/Info.plist"))
}

func TestAssemble_MissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *fixture)
		code   errors.ErrorCode
	}{
		{"runtime", func(f *fixture) { f.opts.RuntimeDir = "/no/jdk" }, errors.ErrRuntimeNotFound},
		{"runtime is a file", func(f *fixture) { f.opts.RuntimeDir = "/m2/foo-1.0.jar" }, errors.ErrRuntimeNotFound},
		{"icon", func(f *fixture) { f.opts.Variables[variables.KeyBundleIconFile] = "nope.icns" }, errors.ErrFileNotFound},
		{"native library", func(f *fixture) { f.opts.NativeLibraries = []string{"/no/lib.dylib"} }, errors.ErrFileNotFound},
		{"dependency", func(f *fixture) { f.opts.Project.Dependencies[0].Path = "/m2/gone.jar" }, errors.ErrFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.modify(f)

			_, err := f.assembler(false).Assemble(f.opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.False(t, f.exists("/proj/target/Foo.app/Contents/Info.plist"))
		})
	}
}

func TestAssemble_MissingLauncher(t *testing.T) {
	f := newFixture(t)
	exec := executor.New(executor.Options{FS: f.fs})
	notFound := errors.New(errors.ErrLauncherNotFound, "no launcher")

	_, err := New(f.fs, exec, fakeLocator{err: notFound}, nil).Assemble(f.opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLauncherNotFound))
}

func TestAssemble_DryRun(t *testing.T) {
	f := newFixture(t)

	result, err := f.assembler(true).Assemble(f.opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.NotEmpty(t, result.Operations)
	for _, op := range result.Operations {
		assert.Equal(t, types.StatusSkipped, op.Status)
	}
	assert.False(t, f.exists("/proj/target"))
}

func TestAssemble_Clean(t *testing.T) {
	f := newFixture(t)
	stale := "/proj/target/Foo.app/Contents/Resources/stale.txt"
	require.NoError(t, f.fs.MkdirAll(parent(stale), 0755))
	require.NoError(t, f.fs.WriteFile(stale, []byte("old"), 0644))

	_, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)
	assert.True(t, f.exists(stale))

	f.opts.Clean = true
	result, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)
	assert.False(t, f.exists(stale))
	assert.Equal(t, "clean", result.Steps[0])
}

func TestAssemble_AppNameFallsBackToFinalName(t *testing.T) {
	f := newFixture(t)
	f.opts.Project.Name = ""
	f.opts.Project.BuildDir = "/out"

	result, err := f.assembler(false).Assemble(f.opts)
	require.NoError(t, err)
	assert.Equal(t, "/out/foo-1.0.app", result.AppDir)
}
