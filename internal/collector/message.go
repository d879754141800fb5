package collector

import (
	"fmt"
	"strings"

	"github.com/vfg2006/brand-kpi-collector/internal/domain"
)

// BuildAlertMessage monta o texto do alerta em Markdown do Slack, com
// os KPIs por marca e as fontes degradadas do run.
func BuildAlertMessage(ymd, slotLabel string, aggregate *domain.AggregateResult, kpis map[domain.Brand]*domain.BrandKPI) string {
	var b strings.Builder

	b.WriteString("*👀현재 ROAS/CPA 알림*\n")
	fmt.Fprintf(&b, "- 날짜: %s / 슬롯: %s\n", ymd, slotLabel)

	for _, brand := range domain.ReportingBrands {
		kpi := kpis[brand]
		if kpi == nil {
			continue
		}

		fmt.Fprintf(&b, "\n*✅%s*\n", brand.DisplayName())
		fmt.Fprintf(&b, "• ROAS: %.2f\n", kpi.ROAS)
		fmt.Fprintf(&b, "• CPA: %.2f\n", kpi.CPA)
		fmt.Fprintf(&b, "• 광고비: %.0f\n", kpi.Spend)
		fmt.Fprintf(&b, "• 구매수: %d\n", kpi.Purchases)
		fmt.Fprintf(&b, "• 매출: %d\n", kpi.Revenue)
	}

	if degraded := aggregate.DegradedSources(); len(degraded) > 0 {
		labels := make([]string, 0, len(degraded))
		for _, source := range degraded {
			labels = append(labels, string(source))
		}

		fmt.Fprintf(&b, "\n⚠️ 수집 실패 소스: %s\n", strings.Join(labels, ", "))
	}

	return b.String()
}
