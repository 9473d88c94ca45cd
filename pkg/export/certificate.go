package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Certificate holds the text printed on a completion certificate.
type Certificate struct {
	AttendeeName string
	Workshop     string
	Instructor   string
	Duration     string
	IssuedAt     time.Time
	SerialNumber string
}

// RenderCertificate draws a landscape completion certificate.
func RenderCertificate(c Certificate) ([]byte, error) {
	if c.AttendeeName == "" || c.Workshop == "" {
		return nil, fmt.Errorf("certificate requires attendee and workshop names")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w, h := pdf.GetPageSize()
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(14, 14, w-28, h-28, "D")

	pdf.SetY(40)
	pdf.SetFont("Arial", "B", 30)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 12, tr(c.AttendeeName), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 8, "has successfully completed", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(c.Workshop), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	if c.Duration != "" {
		pdf.CellFormat(0, 8, tr("Duration: "+c.Duration), "", 1, "C", false, 0, "")
	}
	if c.Instructor != "" {
		pdf.CellFormat(0, 8, tr("Instructor: "+c.Instructor), "", 1, "C", false, 0, "")
	}

	issued := c.IssuedAt
	if issued.IsZero() {
		issued = time.Now().UTC()
	}
	pdf.SetY(h - 40)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, "Issued "+issued.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	if c.SerialNumber != "" {
		pdf.CellFormat(0, 6, "Serial "+c.SerialNumber, "", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
