// Package commands holds the operations behind the macappbundler CLI. Each
// subpackage implements one command against an already loaded configuration
// and returns a result the CLI renders:
//
//   - bundle assembles the .app, then optionally packages and publishes it
//   - diskimage packages an existing .app into a .dmg
//   - verify inspects an assembled bundle
//   - initialize writes a starter project file and Info.plist template
//
// Commands take their filesystem and command runner as options so they can
// run against an in-memory filesystem in tests.
package commands
