package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

// stubStrategy devolve um valor fixo e registra se foi consultada.
type stubStrategy struct {
	name   string
	text   string
	called bool
	panics bool
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Locate(doc *goquery.Document) (string, bool) {
	s.called = true

	if s.panics {
		panic("seletor inválido")
	}

	return s.text, s.text != ""
}

func TestChainStopsAtFirstMatch(t *testing.T) {
	doc := docFromHTML(t, "<html></html>")

	first := &stubStrategy{name: "primeira", text: "1,234,000원 56건"}
	second := &stubStrategy{name: "segunda", text: "outro valor"}

	chain := NewChain(first, second)

	text, err := chain.Extract(doc)

	assert.NoError(t, err)
	assert.Equal(t, "1,234,000원 56건", text)
	assert.True(t, first.called)
	assert.False(t, second.called)
}

func TestChainFallsThroughEmptyResults(t *testing.T) {
	doc := docFromHTML(t, "<html></html>")

	first := &stubStrategy{name: "primeira"}
	second := &stubStrategy{name: "segunda", text: "300,000원 10건"}

	chain := NewChain(first, second)

	text, err := chain.Extract(doc)

	assert.NoError(t, err)
	assert.Equal(t, "300,000원 10건", text)
}

func TestChainSurvivesPanickingStrategy(t *testing.T) {
	doc := docFromHTML(t, "<html></html>")

	panicking := &stubStrategy{name: "quebrada", panics: true}
	fallback := &stubStrategy{name: "reserva", text: "300,000원 10건"}

	chain := NewChain(panicking, fallback)

	text, err := chain.Extract(doc)

	assert.NoError(t, err)
	assert.Equal(t, "300,000원 10건", text)
	assert.True(t, fallback.called)
}

func TestChainExhaustionIsExtractionError(t *testing.T) {
	doc := docFromHTML(t, "<html></html>")

	chain := NewChain(
		&stubStrategy{name: "primeira"},
		&stubStrategy{name: "segunda"},
	)

	_, err := chain.Extract(doc)

	assert.Error(t, err)
	assert.Equal(t, collecterrors.ErrExtraction, collecterrors.KindOf(err))
}
