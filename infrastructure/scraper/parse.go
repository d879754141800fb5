package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

var numberRunRe = regexp.MustCompile(`\d[\d,]*`)

// ParseAmountCount extrai valor e quantidade de um texto como
// "1,234,000원 56건". A primeira sequência numérica é o valor e a
// segunda a quantidade; menos de duas sequências é falha de extração.
func ParseAmountCount(raw string) (int, int, error) {
	runs := numberRunRe.FindAllString(NormalizeText(raw), -1)
	if len(runs) < 2 {
		return 0, 0, collecterrors.Newf(collecterrors.ErrExtraction,
			"esperava valor e quantidade no texto extraído, obtive %d número(s)", len(runs))
	}

	amount, err := parseGroupedInt(runs[0])
	if err != nil {
		return 0, 0, collecterrors.Wrap(err, collecterrors.ErrExtraction, "valor ilegível")
	}

	count, err := parseGroupedInt(runs[1])
	if err != nil {
		return 0, 0, collecterrors.Wrap(err, collecterrors.ErrExtraction, "quantidade ilegível")
	}

	return amount, count, nil
}

func parseGroupedInt(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}
