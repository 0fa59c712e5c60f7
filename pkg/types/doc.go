// Package types defines the core types and interfaces used throughout
// macappbundler. This includes the project model handed over by the build
// (Project, Artifact), the filesystem Operation steps that make up a bundle
// assembly, and the narrow FS and CommandRunner collaborators that keep the
// assembler and packager testable without touching the real system.
package types
