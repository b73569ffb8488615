package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfContentType = "application/pdf"
	pdfMargin      = 25.4 // one inch in mm
	pdfFont        = "DejaVu"
	pdfLineHeight  = 6.5
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuBold []byte
)

// PDFExporter lays the statement out on A4 pages in an embedded UTF-8 font,
// so names and answers outside Latin-1 keep their glyphs.
type PDFExporter struct {
	Now func() time.Time
}

func (PDFExporter) Format() string { return FormatPDF }

func (e PDFExporter) Export(content, name string) (*Artifact, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	display := displayName(name)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(pdfFont, "", dejaVuRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", dejaVuBold)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Statement of Purpose - "+display, true)
	pdf.SetAuthor(display, true)
	pdf.SetSubject("Statement of Purpose generated with AI", true)
	pdf.SetCreationDate(now().UTC())
	pdf.AddPage()

	pdf.SetFont(pdfFont, "BU", 15)
	pdf.CellFormat(0, 10, DocumentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(pdfLineHeight)

	for _, blk := range Layout(content) {
		switch blk.Kind {
		case BlockHeading:
			pdf.Ln(4)
			pdf.SetFont(pdfFont, "B", 13)
			pdf.MultiCell(0, 7, blk.Text, "", "L", false)
			pdf.Ln(2)
		default:
			if blk.Text == "" {
				pdf.Ln(pdfLineHeight)
				continue
			}
			pdf.SetFont(pdfFont, "", 12)
			pdf.MultiCell(0, pdfLineHeight, blk.Text, "", "J", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: failed to render: %w", err)
	}
	return &Artifact{
		Data:        buf.Bytes(),
		Filename:    Filename(name, FormatPDF),
		ContentType: pdfContentType,
	}, nil
}
