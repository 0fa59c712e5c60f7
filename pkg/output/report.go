package output

// Status of a report row
type Status string

const (
	StatusNone    Status = ""
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Row is a labelled value.
type Row struct {
	Label  string
	Value  string
	Status Status
}

// Section groups rows under a heading.
type Section struct {
	Title string
	Rows  []Row
}

// Report is what a command prints.
type Report struct {
	Title    string
	Sections []Section
	// Data is encoded as is for JSON and YAML output
	Data interface{}
}

// AddSection appends a section and returns it for filling.
func (r *Report) AddSection(title string) *Section {
	r.Sections = append(r.Sections, Section{Title: title})
	return &r.Sections[len(r.Sections)-1]
}

// Add appends a plain row.
func (s *Section) Add(label, value string) *Section {
	s.Rows = append(s.Rows, Row{Label: label, Value: value})
	return s
}

// AddStatus appends a row carrying a status.
func (s *Section) AddStatus(label, value string, status Status) *Section {
	s.Rows = append(s.Rows, Row{Label: label, Value: value, Status: status})
	return s
}
