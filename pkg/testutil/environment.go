package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a sandbox holding one project
type TestEnvironment struct {
	Root       string
	ProjectDir string
	// BuildDir is <ProjectDir>/target
	BuildDir string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	default:
		env.Root = "/virtual"
		env.FS = filesystem.NewMemFS()
	}
	env.ProjectDir = filepath.Join(env.Root, "project")
	env.BuildDir = filepath.Join(env.ProjectDir, "target")

	if err := env.FS.MkdirAll(env.BuildDir, 0755); err != nil {
		t.Fatalf("Failed to create build directory: %v", err)
	}
	return env
}

// Path joins elements onto the environment root.
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Root}, elem...)...)
}

// FileTree represents a directory structure for testing. Values are file
// contents (string) or nested directories (FileTree).
type FileTree map[string]interface{}

// WithFileTree creates tree below base, relative paths are taken from the
// environment root.
func (env *TestEnvironment) WithFileTree(base string, tree FileTree) {
	env.t.Helper()
	if !filepath.IsAbs(base) {
		base = env.Path(base)
	}
	createFileTree(env.t, env.FS, base, tree)
}

// WriteFile writes content at path, creating parent directories.
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// ReadFile returns the content at path or fails the test.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil
}

func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
