package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Column describes one column of a PDF table.
type Column struct {
	Title string
	Width float64 // millimetres
	Align string  // "L", "C" or "R"
}

// PDFDocument lays out a single-page A4 invoice.
type PDFDocument struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewPDFDocument starts an A4 portrait document with 15mm margins.
func NewPDFDocument(title string) *PDFDocument {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.AddPage()
	return &PDFDocument{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *PDFDocument) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return w - left - right
}

// Heading writes a centred title with an optional subtitle and a rule below.
func (d *PDFDocument) Heading(title, subtitle string) *PDFDocument {
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.SetTextColor(29, 78, 216)
	d.pdf.CellFormat(0, 9, d.tr(title), "", 1, "C", false, 0, "")
	d.pdf.SetTextColor(34, 34, 34)
	if subtitle != "" {
		d.pdf.SetFont("Helvetica", "", 11)
		d.pdf.CellFormat(0, 6, d.tr(subtitle), "", 1, "C", false, 0, "")
	}
	d.pdf.SetDrawColor(85, 85, 85)
	y := d.pdf.GetY() + 2
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.Line(left, y, left+d.contentWidth(), y)
	d.pdf.Ln(5)
	return d
}

// Info writes a "Label: value" line.
func (d *PDFDocument) Info(label, value string) *PDFDocument {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, 5.5, d.tr(fmt.Sprintf("%s: %s", label, value)), "", 1, "L", false, 0, "")
	return d
}

// Table writes a header row and body rows. Each row must have one cell per column.
func (d *PDFDocument) Table(cols []Column, rows [][]string) *PDFDocument {
	d.pdf.Ln(3)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetFillColor(243, 244, 246)
	d.pdf.SetDrawColor(221, 221, 221)
	for _, c := range cols {
		d.pdf.CellFormat(c.Width, 8, d.tr(c.Title), "B", 0, c.Align, true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.pdf.CellFormat(c.Width, 7, d.tr(cell), "B", 0, c.Align, false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(3)
	return d
}

// Amount writes a right-aligned "Label: value" line; bold for the grand total.
func (d *PDFDocument) Amount(label, value string, bold bool) *PDFDocument {
	style, size := "", 10.0
	if bold {
		style, size = "B", 13
	}
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.CellFormat(0, 6.5, d.tr(fmt.Sprintf("%s: %s", label, value)), "", 1, "R", false, 0, "")
	return d
}

// Paragraph writes wrapped free text such as a note.
func (d *PDFDocument) Paragraph(text string) *PDFDocument {
	if text == "" {
		return d
	}
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
	return d
}

// Footer writes a centred closing line above a thin rule.
func (d *PDFDocument) Footer(text string) *PDFDocument {
	d.pdf.Ln(6)
	y := d.pdf.GetY()
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetDrawColor(221, 221, 221)
	d.pdf.Line(left, y, left+d.contentWidth(), y)
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(85, 85, 85)
	d.pdf.CellFormat(0, 5, d.tr(text), "", 1, "C", false, 0, "")
	return d
}

// Bytes renders the document.
func (d *PDFDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("printer: failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
