// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Error taxonomy of bundle assembly and disk image packaging

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/macappbundler/pkg/errors"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "both main markers",
			err:  errors.Newf(errors.ErrConfigValid, "set only one of %s and %s", "JVMMainClassName", "JVMMainModuleName"),
			want: "[CONFIG_INVALID] set only one of JVMMainClassName and JVMMainModuleName",
		},
		{
			name: "missing template",
			err:  errors.Wrap(fs.ErrNotExist, errors.ErrTemplateNotFound, "packaging/Info.plist"),
			want: "[TEMPLATE_NOT_FOUND] packaging/Info.plist: file does not exist",
		},
		{
			name: "tool failure",
			err:  errors.Wrapf(stderrors.New("exit status 1"), errors.ErrToolExecute, "%s failed: %s", "hdiutil", "resource busy"),
			want: "[TOOL_EXECUTE] hdiutil failed: resource busy: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_CopyFailure(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "/repo/app-1.0.jar", Err: fs.ErrNotExist}

	err := errors.Wrapf(cause, errors.ErrFileNotFound, "source file does not exist: %s", cause.Path).
		WithDetail("source", cause.Path).
		WithDetail("target", "/out/Foo.app/Contents/Java/classpath/app-1.0.jar")

	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist), "root cause is reachable")

	var pathErr *fs.PathError
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "/repo/app-1.0.jar", pathErr.Path)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "/repo/app-1.0.jar", details["source"])
	assert.Contains(t, details["target"], "Foo.app")
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrFileCopy, "copy"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrFileCopy, "copy %s", "x"))
}

func TestWithDetails_Merges(t *testing.T) {
	err := errors.New(errors.ErrToolExecute, "hdiutil failed").
		WithDetail("output", "hdiutil: create failed").
		WithDetails(map[string]interface{}{
			"dmg":    "/out/Foo_1.0.0.dmg",
			"output": "hdiutil: create failed - Resource busy",
		})

	assert.Equal(t, map[string]interface{}{
		"dmg":    "/out/Foo_1.0.0.dmg",
		"output": "hdiutil: create failed - Resource busy",
	}, err.Details)

	// A zero value error still accepts details
	bare := &errors.BundlerError{Code: errors.ErrPublish}
	bare.WithDetail("bucket", "releases")
	assert.Equal(t, "releases", bare.Details["bucket"])
}

func TestIs_ComparesCodes(t *testing.T) {
	launcher := errors.New(errors.ErrLauncherNotFound, "configured launcher missing")

	assert.True(t, stderrors.Is(launcher, errors.New(errors.ErrLauncherNotFound, "other message")))
	assert.False(t, stderrors.Is(launcher, errors.New(errors.ErrRuntimeNotFound, "configured launcher missing")))
	assert.False(t, launcher.Is(stderrors.New("plain")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrBundleInvalid, errors.GetErrorCode(errors.New(errors.ErrBundleInvalid, "checks failed")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChain_OutermostCodeWins(t *testing.T) {
	missing := errors.New(errors.ErrRuntimeNotFound, "runtime directory missing").
		WithDetail("source", "/opt/jre")
	step := errors.Wrap(missing, errors.ErrInternal, "assembly step failed")

	assert.Equal(t, errors.ErrInternal, errors.GetErrorCode(step))
	assert.False(t, errors.IsMissingResource(step))

	var inner *errors.BundlerError
	require.True(t, stderrors.As(step.Unwrap(), &inner))
	assert.Equal(t, errors.ErrRuntimeNotFound, inner.Code)
	assert.Equal(t, "/opt/jre", inner.Details["source"])
}

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		code            errors.ErrorCode
		configuration   bool
		missingResource bool
	}{
		{errors.ErrConfigLoad, true, false},
		{errors.ErrConfigParse, true, false},
		{errors.ErrConfigValid, true, false},
		{errors.ErrTemplateNotFound, true, false},
		{errors.ErrFileNotFound, false, true},
		{errors.ErrLauncherNotFound, false, true},
		{errors.ErrRuntimeNotFound, false, true},
		{errors.ErrBundleNotFound, false, true},
		{errors.ErrFileCopy, false, false},
		{errors.ErrFileWrite, false, false},
		{errors.ErrToolExecute, false, false},
		{errors.ErrBundleInvalid, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := errors.New(tt.code, "x")
			assert.Equal(t, tt.configuration, errors.IsConfiguration(err))
			assert.Equal(t, tt.missingResource, errors.IsMissingResource(err))
		})
	}

	assert.False(t, errors.IsConfiguration(stderrors.New("plain")))
	assert.False(t, errors.IsMissingResource(nil))
}
