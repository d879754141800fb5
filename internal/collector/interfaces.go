package collector

import (
	"context"
	"time"

	"github.com/vfg2006/brand-kpi-collector/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Connector busca as métricas do dia corrente de uma fonte de dados.
type Connector interface {
	Source() domain.Source
	Fetch(ctx context.Context, date time.Time) (*domain.SourceResult, error)
}

// SheetWriter grava os valores de um slot na planilha da marca.
type SheetWriter interface {
	UpsertSlot(sheetName, date, startCol string, values []interface{}) (int, string, error)
}

// Notifier envia o resumo do run para o canal de alertas.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// RunStore persiste o histórico de execuções.
type RunStore interface {
	SaveOrUpdate(run *domain.CollectRun) error
}
