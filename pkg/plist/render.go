package plist

import (
	"os"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

const (
	openMarker  = "${"
	closeMarker = "}"
)

// Render substitutes every ${token} placeholder in template with its value in
// m. Unknown tokens become the empty string. Placeholders do not nest and
// never span lines: the first "${" is paired with the first "}" after it on
// the same line, and an opening marker without a later closing marker is left
// as is. Line terminators are kept byte for byte.
func Render(template string, m variables.Mapping) string {
	var out strings.Builder
	out.Grow(len(template))

	for _, line := range strings.SplitAfter(template, "\n") {
		renderLine(&out, line, m)
	}
	return out.String()
}

func renderLine(out *strings.Builder, line string, m variables.Mapping) {
	rest := line
	for {
		token, before, after, ok := nextPlaceholder(rest)
		if !ok {
			break
		}
		out.WriteString(before)
		out.WriteString(m.Get(token))
		rest = after
	}
	out.WriteString(rest)
}

// nextPlaceholder finds the first complete placeholder in s, which must not
// contain a newline other than a trailing one.
func nextPlaceholder(s string) (token, before, after string, ok bool) {
	start := strings.Index(s, openMarker)
	if start < 0 {
		return "", "", "", false
	}
	tail := s[start+len(openMarker):]
	end := strings.Index(tail, closeMarker)
	if end < 0 {
		return "", "", "", false
	}
	return tail[:end], s[:start], tail[end+len(closeMarker):], true
}

// Tokens lists the distinct placeholder names in template in order of first
// appearance.
func Tokens(template string) []string {
	seen := make(map[string]bool)
	var tokens []string

	for _, line := range strings.SplitAfter(template, "\n") {
		rest := line
		for {
			token, _, after, ok := nextPlaceholder(rest)
			if !ok {
				break
			}
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
			rest = after
		}
	}
	return tokens
}

// Missing returns the template tokens that have no entry in m.
func Missing(template string, m variables.Mapping) []string {
	var missing []string
	for _, token := range Tokens(template) {
		if !m.Has(token) {
			missing = append(missing, token)
		}
	}
	return missing
}

// RenderFile reads the template at path and renders it. A missing template is
// a TEMPLATE_NOT_FOUND configuration error.
func RenderFile(fs types.FS, path string, m variables.Mapping) (string, error) {
	logger := logging.GetLogger("plist.render")

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrTemplateNotFound,
				"Info.plist template not found at %s", path).WithDetail("template", path)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read template %s", path).WithDetail("template", path)
	}

	template := string(data)
	if missing := Missing(template, m); len(missing) > 0 {
		logger.Debug().
			Str("template", path).
			Strs("tokens", missing).
			Msg("Template tokens without a value render empty")
	}

	return Render(template, m), nil
}
