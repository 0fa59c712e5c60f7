// Package paths provides centralized path handling for macappbundler.
//
// The layout of an application bundle is fixed, only file contents vary per
// run:
//
//	<App>.app/Contents/Info.plist
//	<App>.app/Contents/MacOS/<executable>
//	<App>.app/Contents/Java/classpath/<group>/<artifact>/<version>/...
//	<App>.app/Contents/Java/modules/<artifact>-<version>.<ext>
//	<App>.app/Contents/Java/lib/...
//	<App>.app/Contents/PlugIns/Runtime.jre/Contents/...
//	<App>.app/Contents/Resources/...
//
// Project relative inputs live under <base>/packaging, outputs under the
// build directory.
//
// # Environment Variables
//
//   - MACAPPBUNDLER_DATA_DIR: Override the XDG data directory
//     (default: $XDG_DATA_HOME/macappbundler)
package paths
