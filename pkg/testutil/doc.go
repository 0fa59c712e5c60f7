// Package testutil provides utilities for testing macappbundler components.
//
// Key components:
//   - TestEnvironment: a project root on an in-memory or temporary real
//     filesystem
//   - FileTree: declarative file setup
//   - WithJavaProject: a small Java project ready to bundle
//   - FakeRunner, FakeLocator, FakeUploader: stand-ins for the external
//     collaborators
//
// Most tests should use EnvMemoryOnly. EnvIsolated is for code that goes
// through os/exec or doublestar, which only see the real filesystem.
package testutil
