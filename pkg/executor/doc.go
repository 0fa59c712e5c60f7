// Package executor runs the filesystem operations that make up a bundle
// assembly and the external tools used for packaging.
//
// Operations run strictly in order as the steps of a synthfs pipeline. The
// first failure stops the run and the operations completed so far are
// reported with the error. Rollback is disabled, a partially populated bundle
// stays on disk for inspection.
package executor
