// Package diskimage packages an assembled application bundle into a .dmg
// disk image.
//
// The bundle is staged into a clean directory together with any extra files
// and symlinks, usually a link to /Applications, and the staging directory
// is handed to hdiutil through a types.CommandRunner.
package diskimage
