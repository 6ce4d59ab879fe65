package export

import (
	"time"

	"github.com/jung-kurt/gofpdf"
)

// renderPDF writes the sections into an A4 PDF with a ruled header, the
// document title, and one bold heading per section.
func renderPDF(path, title string, sections []Section) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetHeaderFunc(func() {
		pdf.SetDrawColor(30, 55, 153)
		pdf.SetLineWidth(0.8)
		pdf.Line(15, 10, 195, 10)
		pdf.Ln(6)
	})

	pdf.AddPage()

	pdf.SetTextColor(30, 55, 153)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Date : "+time.Now().Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, s := range sections {
		pdf.SetTextColor(30, 55, 153)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, tr(s.Body), "", "L", false)
		pdf.Ln(5)
	}

	return pdf.OutputFileAndClose(path)
}
