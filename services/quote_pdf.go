package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"orcaeletricista/models"
)

const pdfFontFamily = "Helvetica"

// pdfMeasurer measures strings with gofpdf's core Helvetica metrics, after
// the same cp1252 translation the renderer applies. It is not safe for
// concurrent use; build one per layout.
type pdfMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewPDFMeasurer returns a TextMeasurer backed by gofpdf font metrics.
func NewPDFMeasurer() TextMeasurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &pdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *pdfMeasurer) StringWidth(s, style string, size float64) float64 {
	p.pdf.SetFont(pdfFontFamily, style, size)
	return p.pdf.GetStringWidth(p.tr(s))
}

// RenderQuotePDF draws a finalized layout and returns the PDF bytes. The
// creation date is fixed to created so equal inputs give equal output.
func RenderQuotePDF(layout *QuoteLayout, title string, created time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(created)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(title, true)
	pdf.SetCreator(AppSignature, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, el := range page.Elements {
			switch el.Kind {
			case KindRect:
				pdf.SetFillColor(el.Color.R, el.Color.G, el.Color.B)
				pdf.Rect(el.X, el.Y, el.W, el.H, "F")
			case KindLine:
				pdf.SetDrawColor(el.Color.R, el.Color.G, el.Color.B)
				pdf.SetLineWidth(el.LineWidth)
				pdf.Line(el.X, el.Y, el.X2, el.Y2)
			case KindText:
				pdf.SetFont(pdfFontFamily, el.Font.Style, el.Font.Size)
				pdf.SetTextColor(el.Color.R, el.Color.G, el.Color.B)
				s := tr(el.Text)
				x := el.X
				switch el.Align {
				case AlignRight:
					x -= pdf.GetStringWidth(s)
				case AlignCenter:
					x -= pdf.GetStringWidth(s) / 2
				}
				pdf.Text(x, el.Y, s)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to draw PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateQuotePDF runs the whole pipeline for one quote: content layout,
// footer finalization and drawing. The quote is only read.
func GenerateQuotePDF(q models.Quote, loc *time.Location) ([]byte, error) {
	layout := FinalizeLayout(BuildQuoteLayout(q, NewPDFMeasurer(), loc))
	title := fmt.Sprintf("Orçamento %s - %s", q.ClientName, FormatDate(q.Date, loc))
	return RenderQuotePDF(layout, title, q.Date)
}
