package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/internal/collector"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

// CollectSyncConfig representa a configuração do agendador da coleta
type CollectSyncConfig struct {
	CronSchedule         string
	SlotToleranceMinutes int
	SyncEnabled          bool
}

// CollectSyncService agenda os runs de coleta nos slots do dia e
// garante que dois runs nunca se sobreponham.
type CollectSyncService struct {
	scheduler          *gocron.Scheduler
	config             CollectSyncConfig
	appConfig          *config.Config
	collectorService   *collector.Service
	slotPicker         *SlotPicker
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

// NewCollectSyncService cria uma nova instância do agendador da coleta
func NewCollectSyncService(collectorService *collector.Service, appConfig *config.Config) *CollectSyncService {
	syncConfig := CollectSyncConfig{
		CronSchedule:         appConfig.CollectSync.CronSchedule,
		SlotToleranceMinutes: appConfig.CollectSync.SlotToleranceMinutes,
		SyncEnabled:          appConfig.CollectSync.Enabled,
	}

	scheduler := gocron.NewScheduler(utils.KST)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":          syncConfig.CronSchedule,
		"slot_tolerance_minutes": syncConfig.SlotToleranceMinutes,
		"sync_enabled":           syncConfig.SyncEnabled,
	}).Info("Configuração do agendador da coleta carregada")

	return &CollectSyncService{
		scheduler:        scheduler,
		config:           syncConfig,
		appConfig:        appConfig,
		collectorService: collectorService,
		slotPicker:       NewSlotPicker(syncConfig.SlotToleranceMinutes),
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *CollectSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Agendamento da coleta desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da coleta")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runCollect()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a coleta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da coleta")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRun dispara um run fora do agendamento (ex.: via API).
// O gate de slot continua valendo.
func (s *CollectSyncService) TriggerManualRun() {
	go s.runCollect()
}

// LastRun devolve os instantes do último run para o healthcheck da API.
func (s *CollectSyncService) LastRun() (startedAt, completedAt time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.lastRunStartedAt, s.lastRunCompletedAt
}

func (s *CollectSyncService) runCollect() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Coleta já em andamento, ignorando disparo")
		return
	}
	s.syncRunning = true
	s.lastRunStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastRunCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	ctx, correlationID := log.WithCorrelationID(context.Background())
	logger := log.ForContext(ctx)

	now := utils.NowKST()

	slot, ok := s.slotPicker.Pick(now)
	if !ok {
		logger.WithField("now", now.Format(time.RFC3339)).
			Info("Fora de qualquer janela de slot, coleta pulada")
		return
	}

	logger.WithFields(log.Fields{
		"correlation_id": correlationID,
		"slot":           slot.Label,
	}).Info("Disparando run de coleta agendado")

	if _, err := s.collectorService.Run(ctx, now, slot); err != nil {
		logger.WithError(err).Error("Run de coleta agendado falhou")
	}
}
