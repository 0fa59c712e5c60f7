// Package topics embeds the help topics shown by 'macappbundler help <topic>'.
package topics

import "embed"

// FS holds the markdown topic files
//
//go:embed *.md
var FS embed.FS
