package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText colapsa espaços em branco, como o texto renderizado.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// LabelSiblingStrategy localiza a célula com o rótulo exato e lê a
// célula vizinha à direita.
type LabelSiblingStrategy struct {
	Label string
}

func (s LabelSiblingStrategy) Name() string {
	return "label_sibling"
}

func (s LabelSiblingStrategy) Locate(doc *goquery.Document) (string, bool) {
	found := ""

	doc.Find("td,th,[role='cell']").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if NormalizeText(cell.Text()) != s.Label {
			return true
		}

		sibling := cell.Next()
		if sibling.Length() == 0 {
			return true
		}

		text := NormalizeText(sibling.Text())
		if text == "" {
			return true
		}

		found = text
		return false
	})

	return found, found != ""
}

// HeaderColumnStrategy localiza o cabeçalho da coluna e lê a célula da
// linha seguinte na mesma posição.
type HeaderColumnStrategy struct {
	Header string
}

func (s HeaderColumnStrategy) Name() string {
	return "header_column"
}

func (s HeaderColumnStrategy) Locate(doc *goquery.Document) (string, bool) {
	found := ""

	doc.Find("th,[role='columnheader']").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		if NormalizeText(header.Text()) != s.Header {
			return true
		}

		index := header.Index()
		nextRow := header.Parent().Next()
		if nextRow.Length() == 0 {
			return true
		}

		cell := nextRow.Children().Eq(index)
		if cell.Length() == 0 {
			return true
		}

		text := NormalizeText(cell.Text())
		if text == "" {
			return true
		}

		found = text
		return false
	})

	return found, found != ""
}

// RawScanStrategy é o último recurso: varre elementos genéricos pelo
// texto exato e lê o próximo irmão.
type RawScanStrategy struct {
	Label string
}

func (s RawScanStrategy) Name() string {
	return "raw_scan"
}

func (s RawScanStrategy) Locate(doc *goquery.Document) (string, bool) {
	found := ""

	doc.Find("td,th,div,span,dt").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if NormalizeText(el.Text()) != s.Label {
			return true
		}

		sibling := el.Next()
		if sibling.Length() == 0 {
			return true
		}

		text := NormalizeText(sibling.Text())
		if text == "" {
			return true
		}

		found = text
		return false
	})

	return found, found != ""
}
