package domain

import "time"

// NormalizedMetric representa a métrica do dia corrente de uma fonte,
// já convertida para o formato comum do agregado.
//
// Valores monetários em KRW. Para fontes de mídia paga o campo Spend
// carrega o investimento e Orders carrega as compras atribuídas;
// Sales permanece zero.
type NormalizedMetric struct {
	Source Source    `json:"source"`
	Brand  Brand     `json:"brand"`
	Date   time.Time `json:"date"`
	Sales  int       `json:"sales"`
	Orders int       `json:"orders"`
	Spend  float64   `json:"spend"`
}

// SourceResult é o retorno bruto de um conector: as métricas do dia por marca.
type SourceResult struct {
	Source  Source                     `json:"source"`
	Date    time.Time                  `json:"date"`
	ByBrand map[Brand]NormalizedMetric `json:"by_brand"`
}

// SourceStatus registra o desfecho de uma fonte dentro de um run.
type SourceStatus struct {
	OK       bool   `json:"ok"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

// AggregateResult consolida as métricas de todas as fontes de um run.
// Fontes que falharam entram zeradas, com o status marcando a degradação.
type AggregateResult struct {
	RunID           string                                `json:"run_id"`
	Date            time.Time                             `json:"date"`
	PerBrand        map[Brand]map[Source]NormalizedMetric `json:"per_brand"`
	PerSourceStatus map[Source]SourceStatus               `json:"per_source_status"`
}

func NewAggregateResult(runID string, date time.Time) *AggregateResult {
	return &AggregateResult{
		RunID:           runID,
		Date:            date,
		PerBrand:        make(map[Brand]map[Source]NormalizedMetric),
		PerSourceStatus: make(map[Source]SourceStatus),
	}
}

// Put registra a métrica de uma fonte para uma marca.
func (a *AggregateResult) Put(m NormalizedMetric) {
	if a.PerBrand[m.Brand] == nil {
		a.PerBrand[m.Brand] = make(map[Source]NormalizedMetric)
	}

	a.PerBrand[m.Brand][m.Source] = m
}

// Metric retorna a métrica da fonte para a marca. Ausência vale zero,
// para que fontes degradadas não derrubem o restante do run.
func (a *AggregateResult) Metric(b Brand, s Source) NormalizedMetric {
	if bySource, ok := a.PerBrand[b]; ok {
		if m, ok := bySource[s]; ok {
			return m
		}
	}

	return NormalizedMetric{Source: s, Brand: b, Date: a.Date}
}

// RowValues monta os sete valores do slot na ordem fixa das colunas:
// investimento meta, vendas/pedidos cafe24, vendas/pedidos coupang,
// vendas/pedidos smartstore.
func (a *AggregateResult) RowValues(b Brand) []interface{} {
	meta := a.Metric(b, SourceMeta)
	cafe24 := a.Metric(b, SourceCafe24)
	coupang := a.Metric(b, SourceCoupang)
	smartstore := a.Metric(b, SourceSmartstore)

	return []interface{}{
		meta.Spend,
		cafe24.Sales,
		cafe24.Orders,
		coupang.Sales,
		coupang.Orders,
		smartstore.Sales,
		smartstore.Orders,
	}
}

// DegradedSources lista as fontes que falharam neste run.
func (a *AggregateResult) DegradedSources() []Source {
	var degraded []Source

	for _, s := range AllSources {
		if status, ok := a.PerSourceStatus[s]; ok && status.Degraded {
			degraded = append(degraded, s)
		}
	}

	return degraded
}
