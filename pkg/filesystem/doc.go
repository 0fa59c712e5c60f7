// Package filesystem provides filesystem implementations for macappbundler.
//
// This package contains implementations of the types.FS interface, the real
// OS filesystem and an afero-backed one for tests, together with the copy
// helpers used to populate a bundle and the glob expansion applied to
// configured resource paths.
package filesystem
