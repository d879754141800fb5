package domain

import "time"

// CollectRun registra uma execução completa da coleta: o agregado das
// fontes, os KPIs por marca e o slot de planilha atendido.
type CollectRun struct {
	ID         string              `json:"id"`
	Date       time.Time           `json:"date"`
	SlotLabel  string              `json:"slot_label"`
	Aggregate  *AggregateResult    `json:"aggregate"`
	KPIs       map[Brand]*BrandKPI `json:"kpis"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
}
