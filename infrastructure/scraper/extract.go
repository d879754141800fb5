package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
)

// Strategy localiza um valor no documento. Retorna o texto bruto e se
// encontrou algo utilizável.
type Strategy interface {
	Name() string
	Locate(doc *goquery.Document) (string, bool)
}

// Chain tenta as estratégias em ordem fixa. A falha (ou pânico) de uma
// estratégia nunca derruba a cadeia; só o esgotamento de todas vira erro.
type Chain struct {
	strategies []Strategy
}

func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Extract devolve o primeiro texto não vazio localizado pela cadeia.
func (c *Chain) Extract(doc *goquery.Document) (string, error) {
	for _, strategy := range c.strategies {
		text, ok := locateSafe(strategy, doc)
		if ok && text != "" {
			log.L.WithFields(log.Fields{
				"strategy": strategy.Name(),
				"raw":      text,
			}).Debug("Estratégia de extração encontrou o valor")

			return text, nil
		}

		log.L.WithField("strategy", strategy.Name()).Debug("Estratégia de extração sem resultado")
	}

	return "", collecterrors.New(collecterrors.ErrExtraction,
		"todas as estratégias de extração falharam")
}

func locateSafe(strategy Strategy, doc *goquery.Document) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.L.WithFields(log.Fields{
				"strategy": strategy.Name(),
				"panic":    r,
			}).Warn("Estratégia de extração entrou em pânico, seguindo para a próxima")

			text, ok = "", false
		}
	}()

	return strategy.Locate(doc)
}
