package services

import (
	"fmt"
	"strings"
	"time"

	"orcaeletricista/models"
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth     = 210.0
	PageHeight    = 297.0
	PageMargin    = 15.0
	ContentWidth  = PageWidth - 2*PageMargin
	ptToMM        = 25.4 / 72
	lineHeightFac = 1.15
	cellPadding   = 3.0
	obsLineStep   = 5.0
	obsWrapInset  = 2.0
)

const (
	AppTitle     = "ORÇA ELETRICISTA PRO"
	AppSubtitle  = "Serviços Elétricos Residenciais e Comerciais"
	AppSignature = "Gerado por Orça Eletricista Pro"
	NotInformed  = "Não informado"
)

// Color is an RGB triple.
type Color struct{ R, G, B int }

var (
	ColorBlack        = Color{0, 0, 0}
	ColorWhite        = Color{255, 255, 255}
	ColorPrimary      = Color{37, 99, 235}
	ColorSecondary    = Color{71, 85, 105}
	ColorLightSlate   = Color{248, 250, 252}
	ColorMaterials    = Color{249, 115, 22}
	ColorDiscount     = Color{22, 163, 74}
	ColorValidUntil   = Color{185, 28, 28}
	ColorDivider      = Color{226, 232, 240}
	ColorSignature    = Color{203, 213, 225}
	ColorFooter       = Color{148, 163, 184}
	ColorObservations = Color{51, 65, 85}
	ColorTableText    = Color{20, 20, 20}
	ColorStripe       = Color{245, 245, 245}
)

// ElementKind is the drawing primitive of a layout element.
type ElementKind string

const (
	KindText ElementKind = "text"
	KindRect ElementKind = "rect"
	KindLine ElementKind = "line"
)

// Align anchors a text element on its X coordinate.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Font is a Helvetica style ("" or "B") and a size in points.
type Font struct {
	Style string
	Size  float64
}

// LayoutElement is one positioned primitive. Text elements use X/Y as the
// baseline anchor; rects use X/Y/W/H; lines run from X/Y to X2/Y2.
type LayoutElement struct {
	Section   string
	Kind      ElementKind
	X, Y      float64
	W, H      float64
	X2, Y2    float64
	Text      string
	Align     Align
	Font      Font
	Color     Color
	LineWidth float64
}

// LayoutPage is the ordered content of one page.
type LayoutPage struct {
	Number   int
	Elements []LayoutElement
}

// QuoteLayout is the paginated document description of one quote.
type QuoteLayout struct {
	Pages     []*LayoutPage
	finalized bool
}

// Texts returns every text element of the given section, across pages.
func (l *QuoteLayout) Texts(section string) []string {
	var out []string
	for _, p := range l.Pages {
		for _, el := range p.Elements {
			if el.Kind == KindText && el.Section == section {
				out = append(out, el.Text)
			}
		}
	}
	return out
}

// HasSection reports whether any element belongs to section, or to a
// sub-section of it ("totals" matches "totals.discount").
func (l *QuoteLayout) HasSection(section string) bool {
	for _, p := range l.Pages {
		for _, el := range p.Elements {
			if el.Section == section || strings.HasPrefix(el.Section, section+".") {
				return true
			}
		}
	}
	return false
}

// FindSection returns the first element of section and the page it is on.
func (l *QuoteLayout) FindSection(section string) (LayoutElement, int, bool) {
	for _, p := range l.Pages {
		for _, el := range p.Elements {
			if el.Section == section {
				return el, p.Number, true
			}
		}
	}
	return LayoutElement{}, 0, false
}

// TextMeasurer reports the rendered width in millimetres of a string set in
// Helvetica with the given style and size.
type TextMeasurer interface {
	StringWidth(s, style string, size float64) float64
}

func lineHeight(size float64) float64 {
	return size * lineHeightFac * ptToMM
}

// ── text wrapping ────────────────────────────────────────────────────────

// wrapText greedily breaks one line of text into pieces no wider than width.
// Words wider than width are split between characters. An empty input yields
// a single empty line.
func wrapText(m TextMeasurer, s string, font Font, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	fits := func(t string) bool { return m.StringWidth(t, font.Style, font.Size) <= width }

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if fits(candidate) {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if fits(word) {
			current = word
			continue
		}
		// break an over-long word
		piece := ""
		for _, r := range word {
			if piece != "" && !fits(piece+string(r)) {
				lines = append(lines, piece)
				piece = ""
			}
			piece += string(r)
		}
		current = piece
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

var observationFont = Font{Size: 9}

// WrapObservations splits text on explicit newlines and then word-wraps
// each resulting line to width independently, so paragraph breaks survive.
func WrapObservations(m TextMeasurer, text string, width float64) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		out = append(out, wrapText(m, line, observationFont, width)...)
	}
	return out
}

// ── builder ──────────────────────────────────────────────────────────────

type layoutBuilder struct {
	m     TextMeasurer
	pages []*LayoutPage
	cur   *LayoutPage
	y     float64
}

func (b *layoutBuilder) newPage(y float64) {
	b.cur = &LayoutPage{Number: len(b.pages) + 1}
	b.pages = append(b.pages, b.cur)
	b.y = y
}

func (b *layoutBuilder) text(section string, x, y float64, s string, align Align, font Font, color Color) {
	b.cur.Elements = append(b.cur.Elements, LayoutElement{
		Section: section, Kind: KindText, X: x, Y: y, Text: s, Align: align, Font: font, Color: color,
	})
}

func (b *layoutBuilder) rect(section string, x, y, w, h float64, fill Color) {
	b.cur.Elements = append(b.cur.Elements, LayoutElement{
		Section: section, Kind: KindRect, X: x, Y: y, W: w, H: h, Color: fill,
	})
}

func (b *layoutBuilder) line(section string, x1, y1, x2, y2, width float64, color Color) {
	b.cur.Elements = append(b.cur.Elements, LayoutElement{
		Section: section, Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Color: color,
	})
}

// BuildQuoteLayout lays out the content of q page by page. Footers are not
// stamped here; see FinalizeLayout. Dates are shown in loc.
func BuildQuoteLayout(q models.Quote, m TextMeasurer, loc *time.Location) *QuoteLayout {
	b := &layoutBuilder{m: m}
	b.newPage(0)

	b.header(q, loc)
	b.clientBlock(q)

	b.y = 80
	b.table(quoteTable{
		section:  "services",
		head:     "Descrição do Serviço",
		headFill: ColorPrimary,
		rows:     serviceRows(q),
	})
	b.y += 10

	if len(q.Materials) > 0 {
		if b.y > PageHeight-50 {
			b.newPage(20)
		}
		b.text("materials.heading", PageMargin, b.y, "MATERIAIS", AlignLeft, Font{"B", 10}, ColorBlack)
		b.y += 5
		b.table(quoteTable{
			section:  "materials",
			head:     "Descrição do Material",
			headFill: ColorMaterials,
			rows:     materialRows(q),
		})
		b.y += 10
	}

	b.totals(q)

	if strings.TrimSpace(q.Observations) != "" {
		b.observations(q.Observations)
	}

	b.signatures()

	return &QuoteLayout{Pages: b.pages}
}

func (b *layoutBuilder) header(q models.Quote, loc *time.Location) {
	right := PageWidth - PageMargin

	b.rect("header.logo", PageMargin, PageMargin, 12, 12, ColorPrimary)
	b.text("header.title", 32, 25, AppTitle, AlignLeft, Font{"B", 22}, ColorBlack)
	b.text("header.subtitle", 32, 30, AppSubtitle, AlignLeft, Font{"", 10}, ColorSecondary)

	b.text("header.id", right, 20, "Orçamento #"+strings.ToUpper(q.ID), AlignRight, Font{"B", 10}, ColorBlack)
	b.text("header.date", right, 25, "Emissão: "+FormatDate(q.Date, loc), AlignRight, Font{"", 9}, ColorBlack)

	statusY := 30.0
	if q.ValidUntil != nil {
		b.text("header.valid_until", right, 30, "Válido até: "+FormatCalendarDate(*q.ValidUntil), AlignRight, Font{"", 9}, ColorValidUntil)
		statusY = 35
	}
	b.text("header.status", right, statusY, "Status: "+strings.ToUpper(string(q.Status)), AlignRight, Font{"", 9}, ColorBlack)

	b.line("header.divider", PageMargin, 40, right, 40, 0.2, ColorDivider)
}

func orNotInformed(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	return s
}

func (b *layoutBuilder) clientBlock(q models.Quote) {
	bold := Font{"B", 10}
	normal := Font{"", 10}
	b.text("client.heading", PageMargin, 50, "DADOS DO CLIENTE", AlignLeft, bold, ColorBlack)
	b.text("client.name", PageMargin, 58, "Nome: "+q.ClientName, AlignLeft, normal, ColorBlack)
	b.text("client.phone", PageMargin, 64, "WhatsApp: "+orNotInformed(q.ClientPhone), AlignLeft, normal, ColorBlack)
	b.text("client.address", PageMargin, 70, "Endereço: "+orNotInformed(q.Address), AlignLeft, normal, ColorBlack)
}

// ── tables ───────────────────────────────────────────────────────────────

type tableColumn struct {
	width float64
	align Align
}

// quoteColumns: description is whatever remains of the content width.
var quoteColumns = []tableColumn{
	{ContentWidth - 15 - 15 - 30 - 30, AlignLeft},
	{15, AlignCenter},
	{15, AlignCenter},
	{30, AlignRight},
	{30, AlignRight},
}

type quoteTable struct {
	section  string
	head     string
	headFill Color
	rows     [][]string
}

var (
	tableHeadFont = Font{"B", 10}
	tableBodyFont = Font{"", 9}
)

func serviceRows(q models.Quote) [][]string {
	rows := make([][]string, 0, len(q.Services))
	for _, s := range q.Services {
		rows = append(rows, []string{
			s.Description,
			fmt.Sprint(s.Quantity),
			DefaultMaterialUnit,
			FormatBRL(s.UnitPrice),
			FormatBRL(ServiceLineTotal(s)),
		})
	}
	return rows
}

func materialRows(q models.Quote) [][]string {
	rows := make([][]string, 0, len(q.Materials))
	for _, m := range q.Materials {
		unit := m.Unit
		if unit == "" {
			unit = DefaultMaterialUnit
		}
		rows = append(rows, []string{
			m.Description,
			formatQty(m.Quantity),
			unit,
			FormatBRL(m.UnitPrice),
			FormatBRL(MaterialLineTotal(m)),
		})
	}
	return rows
}

// wrapRow wraps every cell to its column and returns the lines plus the row
// height.
func (b *layoutBuilder) wrapRow(cells []string, font Font) ([][]string, float64) {
	wrapped := make([][]string, len(cells))
	maxLines := 1
	for i, cell := range cells {
		wrapped[i] = wrapText(b.m, cell, font, quoteColumns[i].width-2*cellPadding)
		maxLines = max(maxLines, len(wrapped[i]))
	}
	return wrapped, float64(maxLines)*lineHeight(font.Size) + 2*cellPadding
}

func (b *layoutBuilder) drawRow(section string, wrapped [][]string, height float64, font Font, color Color, fill *Color, headAlign bool) {
	if fill != nil {
		b.rect(section+".fill", PageMargin, b.y, ContentWidth, height, *fill)
	}
	lh := lineHeight(font.Size)
	ascent := font.Size * ptToMM * 0.75
	x := PageMargin
	for i, lines := range wrapped {
		col := quoteColumns[i]
		align := col.align
		if headAlign {
			align = AlignLeft
		}
		anchor := x + cellPadding
		switch align {
		case AlignCenter:
			anchor = x + col.width/2
		case AlignRight:
			anchor = x + col.width - cellPadding
		}
		for n, l := range lines {
			b.text(section, anchor, b.y+cellPadding+ascent+float64(n)*lh, l, align, font, color)
		}
		x += col.width
	}
	b.y += height
}

func (b *layoutBuilder) tableHead(t quoteTable) (wrapped [][]string, height float64) {
	return b.wrapRow([]string{t.head, "Qtd", "Un", "V. Unitário", "Total"}, tableHeadFont)
}

// table draws a striped table. A row that would cross the bottom margin
// moves to a new page, where the header is repeated.
func (b *layoutBuilder) table(t quoteTable) {
	limit := PageHeight - PageMargin
	head, headH := b.tableHead(t)

	firstH := 0.0
	if len(t.rows) > 0 {
		_, firstH = b.wrapRow(t.rows[0], tableBodyFont)
	}
	if b.y+headH+firstH > limit {
		b.newPage(PageMargin)
	}
	headFill := t.headFill
	b.drawRow(t.section+".head", head, headH, tableHeadFont, ColorWhite, &headFill, true)

	stripe := ColorStripe
	for i, row := range t.rows {
		wrapped, h := b.wrapRow(row, tableBodyFont)
		if b.y+h > limit {
			b.newPage(PageMargin)
			b.drawRow(t.section+".head", head, headH, tableHeadFont, ColorWhite, &headFill, true)
		}
		var fill *Color
		if i%2 == 0 {
			fill = &stripe
		}
		b.drawRow(t.section+".row", wrapped, h, tableBodyFont, ColorTableText, fill, false)
	}
}

// ── totals, observations, signatures ─────────────────────────────────────

func (b *layoutBuilder) totals(q models.Quote) {
	totals := CalcQuoteTotals(q)
	const boxX = PageWidth - PageMargin - 75
	right := PageWidth - PageMargin
	normal := Font{"", 10}

	if b.y > PageHeight-70 {
		b.newPage(20)
	}

	row := func(section, label, value string, color Color) {
		b.text(section, boxX, b.y, label, AlignLeft, normal, color)
		b.text(section, right, b.y, value, AlignRight, normal, color)
	}

	row("totals.services", "Subtotal Mão de Obra:", FormatBRL(totals.ServicesSubtotal), ColorBlack)
	b.y += 6
	row("totals.materials", "Subtotal Materiais:", FormatBRL(totals.MaterialsSubtotal), ColorBlack)

	if totals.TravelFee.IsPositive() {
		b.y += 6
		row("totals.travel", "Taxa de Deslocamento:", FormatBRL(totals.TravelFee), ColorBlack)
	}
	if totals.Discount.IsPositive() {
		b.y += 6
		row("totals.discount", "Desconto:", "- "+FormatBRL(totals.Discount), ColorDiscount)
	}

	b.y += 10
	b.line("totals.divider", boxX, b.y-5, right, b.y-5, 0.5, ColorBlack)
	b.text("totals.grand", boxX, b.y, "TOTAL GERAL:", AlignLeft, Font{"B", 14}, ColorBlack)
	b.text("totals.grand", right, b.y, FormatBRL(totals.GrandTotal), AlignRight, Font{"B", 14}, ColorPrimary)
}

// observations draws the wrapped text in a panel. Lines that do not fit
// above the bottom margin continue on a new page under a repeated heading.
func (b *layoutBuilder) observations(text string) {
	b.y += 20

	lines := WrapObservations(b.m, text, ContentWidth-2*obsWrapInset)
	blockH := float64(len(lines))*obsLineStep + 15

	if b.y+blockH > PageHeight-60 {
		b.newPage(20)
	}

	limit := PageHeight - PageMargin
	for len(lines) > 0 {
		// the panel ends 10mm below the heading plus one step per line
		fit := max(1, int((limit-b.y-10)/obsLineStep))
		chunk := lines[:min(fit, len(lines))]
		lines = lines[len(chunk):]

		n := float64(len(chunk))
		b.text("observations.heading", PageMargin, b.y, "OBSERVAÇÕES E CONDIÇÕES:", AlignLeft, Font{"B", 10}, ColorSecondary)
		b.rect("observations.panel", PageMargin, b.y+4, ContentWidth, n*obsLineStep+6, ColorLightSlate)
		for i, l := range chunk {
			b.text("observations.text", PageMargin+obsWrapInset, b.y+10+float64(i)*obsLineStep, l, AlignLeft, observationFont, ColorObservations)
		}
		b.y += n*obsLineStep + 15

		if len(lines) > 0 {
			b.newPage(20)
		}
	}
}

func (b *layoutBuilder) signatures() {
	if b.y > PageHeight-50 {
		b.newPage(40)
	} else {
		b.y = PageHeight - 45
	}

	b.line("signatures.professional", PageMargin+5, b.y, 90, b.y, 0.2, ColorSignature)
	b.line("signatures.client", PageWidth-90, b.y, PageWidth-PageMargin-5, b.y, 0.2, ColorSignature)

	caption := Font{"", 8}
	b.text("signatures.professional", PageMargin+47.5, b.y+5, "Assinatura do Profissional", AlignCenter, caption, ColorSecondary)
	b.text("signatures.client", PageWidth-47.5-PageMargin, b.y+5, "Assinatura do Cliente", AlignCenter, caption, ColorSecondary)
}

// ── finalization ─────────────────────────────────────────────────────────

// FinalizeLayout stamps "Página X de N" on every page now that N is known.
// Calling it again is a no-op.
func FinalizeLayout(l *QuoteLayout) *QuoteLayout {
	if l.finalized {
		return l
	}
	total := len(l.Pages)
	for _, p := range l.Pages {
		p.Elements = append(p.Elements, LayoutElement{
			Section: "footer",
			Kind:    KindText,
			X:       PageWidth / 2,
			Y:       PageHeight - 10,
			Text:    fmt.Sprintf("Página %d de %d - %s", p.Number, total, AppSignature),
			Align:   AlignCenter,
			Font:    Font{Size: 8},
			Color:   ColorFooter,
		})
	}
	l.finalized = true
	return l
}
