package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/macappbundler/pkg/types"
)

func TestLayout(t *testing.T) {
	l := NewLayout("/build/Foo.app/")

	assert.Equal(t, "/build/Foo.app", l.AppDir())
	assert.Equal(t, "/build/Foo.app/Contents/MacOS/JavaLauncher", l.Executable("JavaLauncher"))
	assert.Equal(t, "/build/Foo.app/Contents/Java/classpath", l.Classpath())
	assert.Equal(t, "/build/Foo.app/Contents/Java/modules", l.Modules())
	assert.Equal(t, "/build/Foo.app/Contents/Java/lib", l.Lib())
	assert.Equal(t, "/build/Foo.app/Contents/PlugIns/Runtime.jre/Contents", l.RuntimeContents())
	assert.Equal(t, "/build/Foo.app/Contents/Resources", l.Resources())
	assert.Equal(t, "/build/Foo.app/Contents/Info.plist", l.InfoPlist())
	assert.Equal(t, l.Contents(), l.Directories()[0])
}

func TestRepositoryPath(t *testing.T) {
	tests := []struct {
		name     string
		artifact types.Artifact
		want     string
	}{
		{
			name:     "jar",
			artifact: types.Artifact{GroupID: "org.apache.commons", ArtifactID: "commons-lang3", Version: "3.12.0", Path: "/m2/commons-lang3-3.12.0.jar"},
			want:     "org/apache/commons/commons-lang3/3.12.0/commons-lang3-3.12.0.jar",
		},
		{
			name:     "classifier",
			artifact: types.Artifact{GroupID: "org.openjfx", ArtifactID: "javafx-base", Version: "21", Classifier: "mac", Path: "/x.jar"},
			want:     "org/openjfx/javafx-base/21/javafx-base-21-mac.jar",
		},
		{
			name:     "no extension anywhere",
			artifact: types.Artifact{GroupID: "g", ArtifactID: "a", Version: "1", Path: "/classes"},
			want:     "g/a/1/a-1.jar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepositoryPath(tt.artifact))
		})
	}
}

func TestArtifactPath(t *testing.T) {
	l := NewLayout("/b/Foo.app")
	a := types.Artifact{GroupID: "com.x", ArtifactID: "foo", Version: "1.0", Path: "/p/foo.jmod"}

	assert.Equal(t, "/b/Foo.app/Contents/Java/modules/foo-1.0.jmod", l.ArtifactPath(types.ModeModule, a))
	assert.Equal(t, "/b/Foo.app/Contents/Java/classpath/com/x/foo/1.0/foo-1.0.jmod", l.ArtifactPath(types.ModeClasspath, a))
	assert.Equal(t, l.Modules(), l.ArtifactDir(types.ModeModule))
	assert.Equal(t, l.Classpath(), l.ArtifactDir(types.ModeClasspath))
}

func TestProjectPaths(t *testing.T) {
	assert.Equal(t, "/p/packaging/Info.plist", TemplatePath("/p"))
	assert.Equal(t, "/p/packaging/app.icns", IconPath("/p", "app.icns"))
	assert.Equal(t, "/p/target", BuildDir("/p", ""))
	assert.Equal(t, "/p/out", BuildDir("/p", "out"))
	assert.Equal(t, "/abs/out", BuildDir("/p", "/abs/out/"))
	assert.Equal(t, "/p/target/Foo.app", AppDir("/p/target", "Foo"))
	assert.Equal(t, "/p/target/bundle", StagingDir("/p/target"))
}

func TestDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	assert.Equal(t, dir, DataDir())
	assert.Equal(t, filepath.Join(dir, "JavaLauncher"), DataSearchPaths("JavaLauncher")[0])
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
