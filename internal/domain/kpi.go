package domain

import "github.com/vfg2006/brand-kpi-collector/pkg/utils"

// BrandKPI consolida os indicadores do dia corrente para uma marca.
//
// Receita e compras somam apenas fontes de venda; o investimento vem
// das fontes de mídia paga. Divisores zerados resultam em indicador
// zero, nunca em erro.
type BrandKPI struct {
	Brand     Brand   `json:"brand"`
	Spend     float64 `json:"spend"`
	Revenue   int     `json:"revenue"`
	Purchases int     `json:"purchases"`
	ROAS      float64 `json:"roas"`
	CPA       float64 `json:"cpa"`
}

// CalculateBrandKPI deriva ROAS e CPA a partir do agregado da marca.
func CalculateBrandKPI(b Brand, agg *AggregateResult) *BrandKPI {
	kpi := &BrandKPI{Brand: b}

	for _, source := range AllSources {
		m := agg.Metric(b, source)

		if source.PaidMedia() {
			kpi.Spend += m.Spend
			continue
		}

		kpi.Revenue += m.Sales
		kpi.Purchases += m.Orders
	}

	if kpi.Spend > 0 {
		kpi.ROAS = utils.RoundWithTwoDecimalPlace(float64(kpi.Revenue) / kpi.Spend)
	}

	if kpi.Purchases > 0 {
		kpi.CPA = utils.RoundWithTwoDecimalPlace(kpi.Spend / float64(kpi.Purchases))
	}

	return kpi
}
