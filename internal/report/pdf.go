package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

const (
	pageMargin   = 20.0
	bannerHeight = 18.0
	lineHeight   = 7.0
)

// Renderer renders documents as A4 PDFs.
type Renderer struct {
	compress bool
	now      func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutCompression leaves page streams uncompressed so the text can be
// searched in the output bytes.
func WithoutCompression() Option {
	return func(r *Renderer) {
		r.compress = false
	}
}

// WithClock sets the clock used for the PDF creation date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a PDF renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{compress: true, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out the document and returns the PDF bytes. Pages break
// automatically when the entries do not fit.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(r.now())
	pdf.SetTitle(doc.Title, false)
	pdf.SetAuthor(doc.Organization, false)
	pdf.SetCreator(doc.Organization, false)
	pdf.SetMargins(pageMargin, bannerHeight+pageMargin/2, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(17, 17, 17)
		pdf.Rect(0, 0, pageWidth, bannerHeight, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(pageMargin, 0)
		pdf.CellFormat(pageWidth-2*pageMargin, bannerHeight, doc.Organization, "", 0, "LM", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(pageMargin, bannerHeight+pageMargin/2)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin / 2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, doc.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range doc.summaryLines() {
		pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineHeight, "Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range doc.Entries {
		pdf.CellFormat(0, lineHeight, entryLine(item), "", 1, "L", false, 0, "")
	}

	if doc.Disclaimer != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, doc.Disclaimer, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRenderReport, err)
	}
	return buf.Bytes(), nil
}
