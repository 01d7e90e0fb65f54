package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatMarkdown, FormatText, FormatJSON}

// ParseFormat accepts a format name, ignoring case. Empty selects markdown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatMarkdown, nil
	}

	if s == "md" {
		return FormatMarkdown, nil
	}

	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("unsupported format %q", s)
}

// ContentType returns the MIME type of a rendered report.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func Render(w io.Writer, r *Report, format Format) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMarkdown:
		_, err := io.WriteString(w, markdownStyle.render(r))
		return err
	case FormatText:
		_, err := io.WriteString(w, textStyle.render(r))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// style holds the decorations that differ between markdown and plain text.
type style struct {
	title   func(string) string
	heading func(string) string
	label   func(string) string
	bullet  string
	indent  string
}

var markdownStyle = style{
	title:   func(s string) string { return "# " + s },
	heading: func(s string) string { return "### " + s },
	label:   func(s string) string { return "**" + s + ":**" },
	bullet:  "- ",
	indent:  "  ",
}

var textStyle = style{
	title:   strings.ToUpper,
	heading: strings.ToUpper,
	label:   func(s string) string { return s + ":" },
	bullet:  "* ",
	indent:  "    ",
}

func (s style) render(r *Report) string {
	var b strings.Builder
	p := r.Profile

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}
	field := func(name, value string) {
		if value != "" {
			line("%s %s", s.label(name), value)
		}
	}

	if p.Name != "" {
		line("%s", s.title(p.Name))
		line("")
	}
	field("Location", p.Location)
	field("Emails", strings.Join(p.Emails, ", "))
	field("Phones", strings.Join(p.Phones, ", "))
	field("Links", strings.Join(p.Links, ", "))
	field("Biography", p.Biography)

	s.entries(&b, "Work Experience", r.Work)
	s.entries(&b, "Education", r.Education)

	if r.TotalWork.Present || r.TotalEducation.Present {
		line("")
	}
	if r.TotalWork.Present {
		line("%s %s", s.label("Total Work Experience"), r.TotalWork.Text)
	}
	if r.TotalEducation.Present {
		line("%s %s", s.label("Total Education Duration"), r.TotalEducation.Text)
	}

	line("")
	line("%s", s.heading("Skills"))
	line("%s", strings.Join(p.Skills, ", "))

	line("")
	line("%s", s.heading("Languages"))
	for _, lang := range p.Languages {
		line("%s%s %s", s.bullet, s.label(lang.Name), lang.Degree)
	}

	line("")
	line("%s", s.heading("Publications"))
	for _, pub := range p.Publications {
		line("%s%s (%s - %s)", s.bullet, pub.Name, pub.PeriodStart, pub.PeriodEnd)
		s.nested(&b, "Date", pub.Date)
		s.nested(&b, "Publisher", pub.Publisher)
		s.nested(&b, "Description", pub.Description)
		s.nested(&b, "Tags", strings.Join(pub.Tags, ", "))
		s.nested(&b, "URL", pub.URL)
	}

	line("")
	line("%s", s.heading("Projects"))
	for _, proj := range p.Projects {
		line("%s%s (%s - %s)", s.bullet, proj.Name, proj.PeriodStart, proj.PeriodEnd)
		s.nested(&b, "Date", proj.Date)
		s.nested(&b, "Description", proj.Description)
		s.nested(&b, "Skills", strings.Join(proj.Skills, ", "))
		s.nested(&b, "URL", proj.URL)
	}

	return b.String()
}

func (s style) entries(b *strings.Builder, heading string, views []EntryView) {
	fmt.Fprintf(b, "\n%s\n", s.heading(heading))
	for _, v := range views {
		fmt.Fprintf(b, "%s%s at %s (%s : %s)\n", s.bullet, v.Title, v.Organization, v.Period, v.DurationText)
		if v.Description != "" {
			fmt.Fprintf(b, "%s%s\n", s.indent, strings.ReplaceAll(v.Description, "\n", "\n"+s.indent))
		}
	}
}

func (s style) nested(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s%s %s\n", s.indent, s.label(name), value)
}
