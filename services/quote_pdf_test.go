package services

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerateQuotePDF_Sample(t *testing.T) {
	result, err := GenerateQuotePDF(sampleQuote(), time.UTC)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Fatalf("result does not start with PDF header")
	}
	if got := strings.Count(string(result), "<</Type /Page\n"); got != 1 {
		t.Errorf("page objects = %d, want 1", got)
	}
}

func TestGenerateQuotePDF_MultiPage(t *testing.T) {
	q := sampleQuote()
	q.Services = manyServices(60)

	result, err := GenerateQuotePDF(q, time.UTC)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}

	want := len(FinalizeLayout(BuildQuoteLayout(q, NewPDFMeasurer(), time.UTC)).Pages)
	if want < 2 {
		t.Fatalf("expected a multi-page layout, got %d page(s)", want)
	}
	if got := strings.Count(string(result), "<</Type /Page\n"); got != want {
		t.Errorf("page objects = %d, want %d", got, want)
	}
}

func TestGenerateQuotePDF_EmptyQuote(t *testing.T) {
	q := sampleQuote()
	q.Services = nil
	q.Materials = nil
	q.Observations = ""

	result, err := GenerateQuotePDF(q, nil)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
}

func TestGenerateQuotePDF_Reproducible(t *testing.T) {
	a, err := GenerateQuotePDF(sampleQuote(), time.UTC)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := GenerateQuotePDF(sampleQuote(), time.UTC)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("rendering the same quote twice produced different bytes")
	}
}

func TestGenerateQuotePDF_ConcurrentRenders(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := sampleQuote()
			if i%2 == 0 {
				q.Materials = nil
			}
			if _, err := GenerateQuotePDF(q, time.UTC); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
}

func TestPDFMeasurer_TranslatesAccents(t *testing.T) {
	m := NewPDFMeasurer()
	plain := m.StringWidth("Orcamento", "", 10)
	accented := m.StringWidth("Orçamento", "", 10)
	if plain <= 0 {
		t.Fatalf("width = %v, want > 0", plain)
	}
	// ç is a single cp1252 glyph with the width of c
	if !floatClose(plain, accented) {
		t.Errorf("width(Orçamento) = %v, want %v", accented, plain)
	}
	if bold := m.StringWidth("Orcamento", "B", 10); bold <= plain {
		t.Errorf("bold width %v should exceed regular %v", bold, plain)
	}
}
