package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/output/styles"
)

// Renderer writes reports in one format.
type Renderer struct {
	writer   io.Writer
	format   Format
	lipgloss *lipgloss.Renderer
}

// NewRenderer creates a renderer for w. format must not be FormatAuto, use
// Format.Resolve first.
func NewRenderer(w io.Writer, format Format) *Renderer {
	log := logging.GetLogger("output.Renderer")
	log.Debug().Str("format", format.String()).Msg("Creating renderer")

	return &Renderer{
		writer:   w,
		format:   format,
		lipgloss: lipgloss.NewRenderer(w),
	}
}

// Format returns the output format
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes the report.
func (r *Renderer) Render(report *Report) error {
	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report.Data)
	case FormatYAML:
		encoder := yaml.NewEncoder(r.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(report.Data); err != nil {
			return err
		}
		return encoder.Close()
	case FormatTerminal:
		_, err := io.WriteString(r.writer, r.renderStyled(report))
		return err
	default:
		_, err := io.WriteString(r.writer, renderPlain(report))
		return err
	}
}

// RenderError writes err in the renderer's format.
func (r *Renderer) RenderError(err error) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.Render(&Report{Data: map[string]string{"error": err.Error()}})
	case FormatTerminal:
		_, werr := fmt.Fprintln(r.writer, r.style("Error").Render("Error:")+" "+err.Error())
		return werr
	default:
		_, werr := fmt.Fprintln(r.writer, "Error: "+err.Error())
		return werr
	}
}

func (r *Renderer) style(name string) lipgloss.Style {
	return styles.GetStyle(name).Renderer(r.lipgloss)
}

func statusStyle(status Status) string {
	switch status {
	case StatusOK:
		return "Success"
	case StatusWarning:
		return "Warning"
	case StatusError:
		return "Error"
	case StatusSkipped:
		return "Skipped"
	}
	return "Value"
}

func (r *Renderer) renderStyled(report *Report) string {
	var b strings.Builder
	if report.Title != "" {
		b.WriteString(r.style("Title").Render(report.Title))
		b.WriteString("\n")
	}
	for i, section := range report.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(r.style("Section").Render(section.Title))
			b.WriteString("\n")
		}
		for _, row := range section.Rows {
			b.WriteString(r.style("Label").Render(row.Label))
			b.WriteString(r.style(statusStyle(row.Status)).Render(row.Value))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPlain(report *Report) string {
	var b strings.Builder
	if report.Title != "" {
		b.WriteString(report.Title)
		b.WriteString("\n\n")
	}

	width := 0
	for _, section := range report.Sections {
		for _, row := range section.Rows {
			if len(row.Label) > width {
				width = len(row.Label)
			}
		}
	}

	for i, section := range report.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(section.Title)
			b.WriteString(":\n")
		}
		for _, row := range section.Rows {
			value := row.Value
			if row.Status != StatusNone && row.Status != StatusOK {
				value = fmt.Sprintf("%s [%s]", value, row.Status)
			}
			fmt.Fprintf(&b, "  %-*s  %s\n", width, row.Label, value)
		}
	}
	return b.String()
}
