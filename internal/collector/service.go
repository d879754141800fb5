package collector

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

// Service orquestra um run de coleta: fan-out nos conectores,
// consolidação com degradação parcial, gravação do slot nas planilhas,
// KPIs e alerta.
type Service struct {
	cfg        *config.Config
	connectors []Connector
	sheets     SheetWriter
	notifier   Notifier
	runStore   RunStore
}

func NewService(cfg *config.Config, connectors []Connector, sheets SheetWriter, notifier Notifier) *Service {
	return &Service{
		cfg:        cfg,
		connectors: connectors,
		sheets:     sheets,
		notifier:   notifier,
	}
}

// WithRunStore habilita a persistência do histórico de runs.
func (s *Service) WithRunStore(store RunStore) *Service {
	s.runStore = store
	return s
}

// Run executa a coleta completa para a data e o slot informados.
//
// Falha de fonte degrada para zero; falha de todas as fontes ou da
// escrita na planilha aborta o run. Falha do alerta apenas loga: o
// alerta nunca desfaz uma escrita já feita.
func (s *Service) Run(ctx context.Context, date time.Time, slot domain.Slot) (*domain.CollectRun, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"date": utils.FormatYMD(date),
		"slot": slot.Label,
	})

	startedAt := time.Now()
	logger.Info("Iniciando run de coleta")

	aggregate, err := s.aggregate(ctx, date)
	if err != nil {
		logger.WithError(err).Error("Run abortado na consolidação")
		return nil, err
	}

	ymd := utils.FormatYMD(date)

	for _, brand := range domain.ReportingBrands {
		values := aggregate.RowValues(brand)

		for _, source := range aggregate.DegradedSources() {
			logger.WithFields(log.Fields{
				"brand":  brand,
				"source": source,
			}).Warn("Fonte degradada: valores gravados como zero")
		}

		row, rangeA1, err := s.sheets.UpsertSlot(s.sheetName(brand), ymd, slot.StartColumn, values)
		if err != nil {
			logger.WithError(err).WithField("brand", brand).Error("Falha ao gravar o slot na planilha")
			return nil, collecterrors.Wrap(err, collecterrors.ErrSheetUpsert,
				"escrita do slot falhou para a marca "+string(brand))
		}

		logger.WithFields(log.Fields{
			"brand": brand,
			"row":   row,
			"range": rangeA1,
		}).Info("Slot gravado na planilha")
	}

	kpis := make(map[domain.Brand]*domain.BrandKPI, len(domain.ReportingBrands))
	for _, brand := range domain.ReportingBrands {
		kpis[brand] = domain.CalculateBrandKPI(brand, aggregate)
	}

	if err := s.notifier.Notify(ctx, BuildAlertMessage(ymd, slot.Label, aggregate, kpis)); err != nil {
		logger.WithError(err).Warn("Falha ao enviar o alerta (run segue concluído)")
	}

	run := &domain.CollectRun{
		ID:         aggregate.RunID,
		Date:       date,
		SlotLabel:  slot.Label,
		Aggregate:  aggregate,
		KPIs:       kpis,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	if s.runStore != nil {
		if err := s.runStore.SaveOrUpdate(run); err != nil {
			logger.WithError(err).Warn("Falha ao persistir o histórico do run")
		}
	}

	logger.WithField("run_id", run.ID).Info("Run de coleta concluído")

	return run, nil
}

// aggregate dispara os conectores em paralelo e consolida o resultado.
func (s *Service) aggregate(ctx context.Context, date time.Time) (*domain.AggregateResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		runID = utils.FormatYMD(date)
	}

	type outcome struct {
		source domain.Source
		result *domain.SourceResult
		err    error
	}

	results := make(chan outcome, len(s.connectors))

	var wg sync.WaitGroup
	for _, connector := range s.connectors {
		wg.Add(1)

		go func(c Connector) {
			defer wg.Done()

			result, err := c.Fetch(ctx, date)
			results <- outcome{source: c.Source(), result: result, err: err}
		}(connector)
	}

	wg.Wait()
	close(results)

	aggregate := domain.NewAggregateResult(runID, date)
	logger := log.ForContext(ctx)

	failures := 0

	for out := range results {
		if out.err != nil {
			failures++
			aggregate.PerSourceStatus[out.source] = domain.SourceStatus{
				Degraded: true,
				Error:    out.err.Error(),
			}

			logger.WithError(out.err).WithFields(log.Fields{
				"source": out.source,
				"kind":   collecterrors.KindOf(out.err),
				"hint":   collecterrors.HintOf(out.err),
			}).Error("Fonte falhou neste run")

			continue
		}

		for brand, metric := range out.result.ByBrand {
			if !brand.Reporting() {
				logger.WithFields(log.Fields{
					"source": out.source,
					"brand":  brand,
				}).Warn("Marca desconhecida descartada na normalização")

				continue
			}

			aggregate.Put(metric)
		}

		aggregate.PerSourceStatus[out.source] = domain.SourceStatus{OK: true}
	}

	if len(s.connectors) > 0 && failures == len(s.connectors) {
		return nil, collecterrors.New(collecterrors.ErrAggregateFatal,
			"todas as fontes falharam no mesmo run")
	}

	return aggregate, nil
}

func (s *Service) sheetName(brand domain.Brand) string {
	switch brand {
	case domain.BrandBrainology:
		return s.cfg.Sheets.BrainologySheet
	default:
		return s.cfg.Sheets.BurdenzeroSheet
	}
}
