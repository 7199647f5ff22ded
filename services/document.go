package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"orcaeletricista/models"
)

// RenderMode selects where a rendered quote goes.
type RenderMode int

const (
	// RenderSave writes the document into the export directory.
	RenderSave RenderMode = iota
	// RenderPreview keeps the document in memory behind a revocable handle.
	RenderPreview
)

func (m RenderMode) String() string {
	switch m {
	case RenderSave:
		return "save"
	case RenderPreview:
		return "preview"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// RenderResult carries the outcome of Render: Path in save mode, Preview in
// preview mode.
type RenderResult struct {
	Path    string
	Preview *Preview
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// QuoteFilename is Orcamento_<client name, whitespace runs as "_">_<ID>.pdf.
func QuoteFilename(q models.Quote) string {
	return fmt.Sprintf("Orcamento_%s_%s.pdf",
		whitespaceRun.ReplaceAllString(q.ClientName, "_"),
		strings.ToUpper(q.ID))
}

// stripPathSeparators keeps a client name from escaping the export dir.
func stripPathSeparators(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, name)
}

// DocumentGenerator renders quotes to PDF. Apart from the preview store it
// holds no mutable state, so concurrent renders are independent.
type DocumentGenerator struct {
	exportDir string
	location  *time.Location
	previews  *PreviewStore
}

func NewDocumentGenerator(exportDir string, loc *time.Location, previews *PreviewStore) *DocumentGenerator {
	if previews == nil {
		previews = NewPreviewStore()
	}
	return &DocumentGenerator{exportDir: exportDir, location: loc, previews: previews}
}

// Previews exposes the store holding preview documents.
func (g *DocumentGenerator) Previews() *PreviewStore {
	return g.previews
}

// Location is the time zone used for dates printed on documents.
func (g *DocumentGenerator) Location() *time.Location {
	return g.location
}

// Bytes renders q and returns the document without storing it anywhere.
func (g *DocumentGenerator) Bytes(q models.Quote) ([]byte, error) {
	data, err := GenerateQuotePDF(q, g.location)
	if err != nil {
		return nil, fmt.Errorf("failed to render quote %s: %w", q.ID, err)
	}
	return data, nil
}

// Render produces the document for q. Save mode writes the file and returns
// its path; preview mode returns a fresh preview the caller must Release.
func (g *DocumentGenerator) Render(q models.Quote, mode RenderMode) (RenderResult, error) {
	data, err := g.Bytes(q)
	if err != nil {
		return RenderResult{}, err
	}

	switch mode {
	case RenderSave:
		if err := os.MkdirAll(g.exportDir, 0o755); err != nil {
			return RenderResult{}, fmt.Errorf("failed to create export dir: %w", err)
		}
		path := filepath.Join(g.exportDir, stripPathSeparators(QuoteFilename(q)))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return RenderResult{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Printf("document: saved quote %s to %s", q.ID, path)
		return RenderResult{Path: path}, nil
	case RenderPreview:
		p := g.previews.Put(q.ID, QuoteFilename(q), data)
		return RenderResult{Preview: &p}, nil
	}
	return RenderResult{}, fmt.Errorf("unknown render mode %s", mode)
}
