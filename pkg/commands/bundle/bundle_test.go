package bundle

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/testutil"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

func setup(t *testing.T) (*testutil.TestEnvironment, *config.Config, *testutil.FakeRunner) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cfg := env.WithJavaProject("Demo")
	return env, cfg, &testutil.FakeRunner{}
}

func TestRun_BundleOnly(t *testing.T) {
	env, cfg, runner := setup(t)

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner})
	require.NoError(t, err)

	appDir := filepath.Join(env.BuildDir, "Demo.app")
	assert.Equal(t, appDir, result.Bundle.AppDir)
	assert.Nil(t, result.DiskImage)
	assert.Nil(t, result.Publish)
	assert.Empty(t, runner.Calls)

	info := env.ReadFile(filepath.Join(appDir, "Contents", "Info.plist"))
	assert.Contains(t, info, "<string>Demo</string>")
	assert.Contains(t, info, "<string>com.example.app</string>")
	assert.Contains(t, info, "<string>"+testutil.ProjectMainClass+"</string>")
	assert.True(t, env.Exists(filepath.Join(appDir, "Contents", "Java", "classpath",
		"org", "slf4j", "slf4j-api", "2.0.9", "slf4j-api-2.0.9.jar")))
	assert.True(t, env.Exists(filepath.Join(appDir, "Contents", "MacOS", "JavaLauncher")))
}

func TestRun_WithDiskImageAndPublish(t *testing.T) {
	env, cfg, runner := setup(t)
	cfg.DMG.Generate = true
	cfg.DMG.AppendVersion = true
	cfg.Publish.URL = "s3://releases/demo/"
	uploader := &testutil.FakeUploader{}

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner, Uploader: uploader})
	require.NoError(t, err)

	dmg := filepath.Join(env.BuildDir, "Demo_1.0.0.dmg")
	require.NotNil(t, result.DiskImage)
	assert.Equal(t, dmg, result.DiskImage.Path)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "hdiutil", runner.Calls[0].Name)
	assert.Contains(t, runner.Calls[0].Args, filepath.Join(env.BuildDir, "bundle"))

	assert.True(t, env.Exists(filepath.Join(env.BuildDir, "bundle", "Demo.app", "Contents", "Info.plist")))

	require.NotNil(t, result.Publish)
	assert.Equal(t, "s3://releases/demo/Demo_1.0.0.dmg", result.Publish.URL)
	assert.Equal(t, []testutil.Upload{{Path: dmg, Bucket: "releases", Key: "demo/Demo_1.0.0.dmg"}}, uploader.Uploads)
}

func TestRun_SkipFlags(t *testing.T) {
	env, cfg, runner := setup(t)
	cfg.DMG.Generate = true

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner, NoDiskImage: true})
	require.NoError(t, err)
	assert.Nil(t, result.DiskImage)
	assert.Empty(t, runner.Calls)
}

func TestRun_FailedAssemblySkipsDiskImage(t *testing.T) {
	env, cfg, runner := setup(t)
	cfg.DMG.Generate = true
	cfg.Bundle.Resources = []string{env.Path("missing", "README.txt")}

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	require.NotNil(t, result)
	assert.Nil(t, result.DiskImage)
	assert.Empty(t, runner.Calls)
}

func TestRun_InvalidConfiguration(t *testing.T) {
	env, cfg, runner := setup(t)
	cfg.Plist[variables.KeyMainModuleName] = "com.example.app"

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Nil(t, result)
	assert.False(t, env.Exists(filepath.Join(env.BuildDir, "Demo.app")))
}

func TestRun_DiskImageToolFailure(t *testing.T) {
	env, cfg, _ := setup(t)
	cfg.DMG.Generate = true
	cfg.Publish.URL = "s3://releases/"
	runner := &testutil.FakeRunner{
		Result: types.CommandResult{ExitCode: 1, Output: "hdiutil: create failed"},
		Err:    errors.New(errors.ErrToolExecute, "hdiutil exited with 1"),
	}
	uploader := &testutil.FakeUploader{}

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner, Uploader: uploader})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolExecute))
	assert.NotNil(t, result.Bundle)
	assert.Nil(t, result.Publish)
	assert.Empty(t, uploader.Uploads)
}

func TestRun_ReservedOverrideWarning(t *testing.T) {
	env, cfg, runner := setup(t)
	cfg.Plist[variables.KeyRuntimePath] = "/custom/jre"

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, Runner: runner})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], variables.KeyRuntimePath)
	assert.Equal(t, variables.RuntimePath, result.Bundle.Variables.Get(variables.KeyRuntimePath))
}

func TestRun_DryRun(t *testing.T) {
	env, cfg, _ := setup(t)
	cfg.DMG.Generate = true
	cfg.Publish.URL = "s3://releases/"

	result, err := Run(context.Background(), Options{Config: cfg, FS: env.FS, DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.Bundle.DryRun)
	assert.True(t, result.DiskImage.DryRun)
	assert.True(t, result.Publish.DryRun)
	assert.False(t, env.Exists(filepath.Join(env.BuildDir, "Demo.app")))
}
