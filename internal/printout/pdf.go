package printout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

var ErrExportFailed = errors.New("pdf export failed")

const (
	pageMargin   = 14.0
	labelWidth   = 48.0
	lineHeight   = 5.5
	sectionSpace = 3.0
)

// Filename builds the download name for a rendered chart, e.g.
// "CH-001_Jane_Roe.pdf".
func Filename(doc *Document) string {
	name := strings.ReplaceAll(strings.TrimSpace(doc.PatientName), " ", "_")
	if name == "" {
		return doc.FileNo + ".pdf"
	}
	return doc.FileNo + "_" + name + ".pdf"
}

// ExportPDF typesets a rendered document as a letter-portrait PDF and
// writes it to w. The footer carries the patient name, file number and
// "Page i of n" on every page; the total is resolved with fpdf's page
// alias second pass.
func ExportPDF(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		footer := fmt.Sprintf("%s  |  File No.: %s  |  Page %d of {nb}", doc.PatientName, doc.FileNo, pdf.PageNo())
		pdf.CellFormat(0, 6, tr(footer), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	for i, page := range doc.Pages {
		pdf.AddPage()
		if i == 0 {
			writeHeader(pdf, tr, doc)
		}
		for _, section := range page.Sections {
			writeSection(pdf, tr, section)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string, doc *Document) {
	if doc.ClinicName != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 8, tr(doc.ClinicName), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, section Section) {
	if section.Title != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 6, tr(section.Title), "1", 1, "L", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	if section.Text != "" {
		pdf.MultiCell(0, lineHeight, tr(section.Text), "1", "L", false)
	}
	for _, row := range section.Rows {
		writeRow(pdf, tr, row)
	}
	pdf.Ln(sectionSpace)
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, row Row) {
	pageW, _ := pdf.GetPageSize()
	valueWidth := pageW - 2*pageMargin - labelWidth

	x, y := pdf.GetXY()
	pdf.SetFont("Helvetica", "B", 9)
	pdf.MultiCell(labelWidth, lineHeight, tr(row.Label), "1", "L", false)
	labelBottom := pdf.GetY()

	pdf.SetXY(x+labelWidth, y)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(valueWidth, lineHeight, tr(row.Value), "1", "L", false)
	if pdf.GetY() < labelBottom {
		pdf.SetY(labelBottom)
	}
	pdf.SetX(pageMargin)
}
