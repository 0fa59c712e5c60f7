// Package assembler builds a macOS application bundle for a Java application.
//
// Assembly is a fixed sequence of steps: validate the configuration, create
// the bundle skeleton, copy the artifacts, install the launcher, embed the
// runtime, copy resources and native libraries, install the icon and write
// Info.plist. Each step checks its own inputs when it runs and hands its
// filesystem operations to the executor. The first failing step aborts the
// assembly, whatever was written before it stays on disk.
package assembler
