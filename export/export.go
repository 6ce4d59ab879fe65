// Package export renders the assembled meeting report into user-facing
// documents. The pipeline supplies content as an ordered list of named
// sections; renderers never see pipeline internals.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a target document format.
type Format string

const (
	// FormatPDF renders an A4 PDF document.
	FormatPDF Format = "pdf"
	// FormatMarkdown renders a Markdown document.
	FormatMarkdown Format = "markdown"
	// FormatText renders a plain-text document.
	FormatText Format = "text"
)

// extensions maps formats to file extensions.
var extensions = map[Format]string{
	FormatPDF:      ".pdf",
	FormatMarkdown: ".md",
	FormatText:     ".txt",
}

// Section is one named block of report content.
type Section struct {
	Title string
	Body  string
}

// Exporter writes report sections into documents under OutputDir, one file
// per requested format.
type Exporter struct {
	// OutputDir is the directory documents are written into. It is
	// created if missing.
	OutputDir string
	// Formats are the document formats to produce.
	Formats []Format
	// DocumentTitle is the heading placed at the top of every document.
	DocumentTitle string
}

// NewExporter creates an Exporter for the given directory and formats.
// With no formats given, all supported formats are produced.
func NewExporter(outputDir string, formats ...Format) *Exporter {
	if len(formats) == 0 {
		formats = []Format{FormatPDF, FormatMarkdown, FormatText}
	}
	return &Exporter{
		OutputDir:     outputDir,
		Formats:       formats,
		DocumentTitle: "Compte rendu de réunion",
	}
}

// Export renders the sections into every configured format and returns the
// written file path per format. Any render or write failure aborts the
// export; partially written files from earlier formats are left in place
// for inspection.
func (e *Exporter) Export(baseName string, sections []Section) (map[Format]string, error) {
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make(map[Format]string, len(e.Formats))
	for _, format := range e.Formats {
		ext, ok := extensions[format]
		if !ok {
			return nil, fmt.Errorf("unsupported export format %q", format)
		}
		path := filepath.Join(e.OutputDir, baseName+ext)

		var err error
		switch format {
		case FormatPDF:
			err = renderPDF(path, e.DocumentTitle, sections)
		case FormatMarkdown:
			err = os.WriteFile(path, []byte(RenderMarkdown(e.DocumentTitle, sections)), 0o644)
		case FormatText:
			err = os.WriteFile(path, []byte(RenderText(e.DocumentTitle, sections)), 0o644)
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		paths[format] = path
	}

	return paths, nil
}

// RenderMarkdown renders sections as a Markdown document.
func RenderMarkdown(title string, sections []Section) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n## ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(s.Body))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderText renders sections as a plain-text document with underlined
// section headings.
func RenderText(title string, sections []Section) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len([]rune(s.Title))))
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(s.Body))
		b.WriteString("\n")
	}
	return b.String()
}
