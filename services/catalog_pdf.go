package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"orcaeletricista/models"
)

var (
	catalogHeaderBg  = &props.Color{Red: 37, Green: 99, Blue: 235}
	catalogSectionBg = &props.Color{Red: 241, Green: 245, Blue: 249}
	catalogStripeBg  = &props.Color{Red: 248, Green: 250, Blue: 252}
	catalogMuted     = &props.Color{Red: 100, Green: 116, Blue: 139}
	catalogWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateCatalogPDF prints the reference price tables: services grouped by
// category with min/avg/max prices, then materials.
func GenerateCatalogPDF(catalog *models.Catalog, generated time.Time, loc *time.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithCreationDate(generated).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.Bottom,
			Size:    8,
			Color:   &props.Color{Red: 148, Green: 163, Blue: 184},
		}).
		Build()

	m := maroto.New(cfg)

	addCatalogHeader(m, generated, loc)

	for _, cat := range models.ServiceCategories {
		services := SearchServices(catalog, "", cat)
		if len(services) == 0 {
			continue
		}
		addCategorySection(m, cat, services)
	}

	if len(catalog.Materials) > 0 {
		addMaterialsSection(m, catalog.Materials)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addCatalogHeader(m core.Maroto, generated time.Time, loc *time.Location) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Tabela de Preços de Referência", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
		row.New(7).Add(
			col.New(8).Add(
				text.New(AppSubtitle, props.Text{Size: 9, Color: catalogMuted}),
			),
			col.New(4).Add(
				text.New("Emissão: "+FormatDate(generated, loc), props.Text{
					Size:  9,
					Align: align.Right,
					Color: catalogMuted,
				}),
			),
		),
		row.New(4),
	)
}

func addCategorySection(m core.Maroto, cat models.ServiceCategory, services []models.ServiceDefinition) {
	sectionCell := &props.Cell{BackgroundColor: catalogSectionBg}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(string(cat), props.Text{Size: 10, Style: fontstyle.Bold, Top: 1.5, Left: 1}),
			).WithStyle(sectionCell),
		),
	)

	addPriceHeader(m, []string{"Serviço", "Mínimo", "Médio", "Máximo"}, []int{6, 2, 2, 2})

	for i, s := range services {
		cells := []string{s.Description, FormatBRL(s.MinPrice), FormatBRL(s.AvgPrice), FormatBRL(s.MaxPrice)}
		addPriceRow(m, cells, []int{6, 2, 2, 2}, i%2 == 1)
	}
	m.AddRows(row.New(4))
}

func addMaterialsSection(m core.Maroto, materials []models.MaterialDefinition) {
	sectionCell := &props.Cell{BackgroundColor: catalogSectionBg}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Materiais", props.Text{Size: 10, Style: fontstyle.Bold, Top: 1.5, Left: 1}),
			).WithStyle(sectionCell),
		),
	)

	addPriceHeader(m, []string{"Material", "Un", "Preço"}, []int{8, 2, 2})
	for i, mat := range materials {
		addPriceRow(m, []string{mat.Description, mat.Unit, FormatBRL(mat.Price)}, []int{8, 2, 2}, i%2 == 1)
	}
}

// addPriceHeader renders a header row; the first column is left aligned and
// the rest are right aligned.
func addPriceHeader(m core.Maroto, labels []string, sizes []int) {
	headerCell := &props.Cell{BackgroundColor: catalogHeaderBg}
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(
			text.New(label, props.Text{Size: 8, Style: fontstyle.Bold, Align: a, Color: catalogWhite, Top: 1.5, Left: 1, Right: 1}),
		).WithStyle(headerCell))
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addPriceRow(m core.Maroto, cells []string, sizes []int, striped bool) {
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		column := col.New(sizes[i]).Add(
			text.New(c, props.Text{Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1}),
		)
		if striped {
			column = column.WithStyle(&props.Cell{BackgroundColor: catalogStripeBg})
		}
		cols = append(cols, column)
	}
	m.AddRows(row.New(7).Add(cols...))
}
