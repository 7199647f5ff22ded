package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"orcaeletricista/models"
)

const (
	quotesSheet = "Orçamentos"
	itemsSheet  = "Itens"
	brlNumFmt   = `"R$" #,##0.00;-"R$" #,##0.00`
)

// GenerateQuotesExcel writes one row per quote with its totals, and a second
// sheet listing every service and material line. Money cells are numeric.
func GenerateQuotesExcel(quotes []models.Quote, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, quotesSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("create items sheet: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#2563EB"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	textStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create text style: %w", err)
	}

	numFmt := brlNumFmt
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Quotes sheet ────────────────────────────────────────────────────

	quoteHeaders := []string{"ID", "Cliente", "WhatsApp", "Endereço", "Data", "Válido até", "Status",
		"Mão de Obra", "Materiais", "Deslocamento", "Desconto", "Total"}
	widths := []float64{12, 28, 16, 36, 12, 12, 12, 14, 14, 14, 14, 16}
	if err := writeHeader(f, quotesSheet, quoteHeaders, widths, headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, q := range quotes {
		totals := CalcQuoteTotals(q)
		validUntil := ""
		if q.ValidUntil != nil {
			validUntil = FormatCalendarDate(*q.ValidUntil)
		}
		values := []any{
			q.ID,
			sanitizeExcelCell(q.ClientName),
			sanitizeExcelCell(q.ClientPhone),
			sanitizeExcelCell(q.Address),
			FormatDate(q.Date, loc),
			validUntil,
			q.Status.Label(),
			totals.ServicesSubtotal.InexactFloat64(),
			totals.MaterialsSubtotal.InexactFloat64(),
			totals.TravelFee.InexactFloat64(),
			totals.Discount.InexactFloat64(),
			totals.GrandTotal.InexactFloat64(),
		}
		if err := writeRow(f, quotesSheet, row, values); err != nil {
			return nil, err
		}
		f.SetCellStyle(quotesSheet, cellName(1, row), cellName(7, row), textStyle)
		f.SetCellStyle(quotesSheet, cellName(8, row), cellName(12, row), moneyStyle)
		row++
	}

	// Skip a blank row, then the aggregate.
	row++
	f.SetCellValue(quotesSheet, cellName(11, row), "Total Geral:")
	f.SetCellValue(quotesSheet, cellName(12, row), AggregateFleetValue(quotes).InexactFloat64())
	f.SetCellStyle(quotesSheet, cellName(11, row), cellName(12, row), totalStyle)

	// ── Items sheet ─────────────────────────────────────────────────────

	itemHeaders := []string{"Orçamento", "Cliente", "Tipo", "Descrição", "Qtd", "Un", "V. Unitário", "Total"}
	itemWidths := []float64{12, 28, 10, 48, 8, 8, 14, 14}
	if err := writeHeader(f, itemsSheet, itemHeaders, itemWidths, headerStyle); err != nil {
		return nil, err
	}

	row = 2
	for _, q := range quotes {
		for _, s := range q.Services {
			values := []any{q.ID, sanitizeExcelCell(q.ClientName), "Serviço", sanitizeExcelCell(s.Description),
				s.Quantity, DefaultMaterialUnit, s.UnitPrice.InexactFloat64(), ServiceLineTotal(s).InexactFloat64()}
			if err := writeRow(f, itemsSheet, row, values); err != nil {
				return nil, err
			}
			f.SetCellStyle(itemsSheet, cellName(1, row), cellName(6, row), textStyle)
			f.SetCellStyle(itemsSheet, cellName(7, row), cellName(8, row), moneyStyle)
			row++
		}
		for _, m := range q.Materials {
			unit := m.Unit
			if unit == "" {
				unit = DefaultMaterialUnit
			}
			values := []any{q.ID, sanitizeExcelCell(q.ClientName), "Material", sanitizeExcelCell(m.Description),
				m.Quantity.InexactFloat64(), sanitizeExcelCell(unit), m.UnitPrice.InexactFloat64(), MaterialLineTotal(m).InexactFloat64()}
			if err := writeRow(f, itemsSheet, row, values); err != nil {
				return nil, err
			}
			f.SetCellStyle(itemsSheet, cellName(1, row), cellName(6, row), textStyle)
			f.SetCellStyle(itemsSheet, cellName(7, row), cellName(8, row), moneyStyle)
			row++
		}
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for i, h := range headers {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, colName, colName, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", colName, err)
		}
		f.SetCellValue(sheet, colName+"1", h)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if err := f.SetCellValue(sheet, cellName(i+1, row), v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cellName(i+1, row), err)
		}
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
