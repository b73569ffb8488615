// Package export renders an assembled statement as a downloadable file.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	FormatTXT  = "txt"
	FormatDOCX = "docx"
	FormatPDF  = "pdf"

	DocumentTitle = "STATEMENT OF PURPOSE"
	defaultName   = "User"
)

// Artifact is a rendered file ready to send as an attachment.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Exporter renders content for the applicant called name.
type Exporter interface {
	Format() string
	Export(content, name string) (*Artifact, error)
}

// Exporters returns every supported exporter keyed by format.
func Exporters() map[string]Exporter {
	return map[string]Exporter{
		FormatTXT:  TextExporter{},
		FormatDOCX: DOCXExporter{},
		FormatPDF:  PDFExporter{},
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename builds SOP_<name>.<ext>, with whitespace runs replaced by
// underscores and characters that break a Content-Disposition header removed.
func Filename(name, ext string) string {
	return fmt.Sprintf("SOP_%s.%s", safeName(name), ext)
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '/' || r == '\\':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	if name == "" {
		return defaultName
	}
	return name
}

// displayName is the name used inside documents.
func displayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return defaultName
}
