// Package plist renders the Info.plist template of a bundle and reads a
// rendered Info.plist back for verification.
//
// Templates are plain text with ${token} placeholders. Rendering is a textual
// substitution, the template does not need to be valid XML until after it has
// been rendered.
package plist
