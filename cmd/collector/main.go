package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/database/postgres"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/cafe24"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/coupang"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/smartstore"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/notifier"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/repository"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/spreadsheet"
	"github.com/vfg2006/brand-kpi-collector/internal/api"
	"github.com/vfg2006/brand-kpi-collector/internal/collector"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/scheduler"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metaClient := metaclient.NewClient(cfg)
	smartstoreClient := smartstore.NewClient(cfg, smartstore.NewTokenCache(cfg.Smartstore.TokenCacheFile))

	connectors := []collector.Connector{
		meta.New(cfg, metaClient),
		cafe24.New(cfg),
		coupang.New(cfg),
		smartstore.New(cfg, smartstoreClient),
	}

	values, err := spreadsheet.NewGoogleValues(ctx, cfg.Sheets)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o cliente do Google Sheets")
	}

	collectorService := collector.NewService(
		cfg,
		connectors,
		spreadsheet.NewWriter(values),
		notifier.NewSlackNotifier(cfg.Slack),
	)

	var runRepo repository.CollectRunRepository

	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		runRepo = repository.NewCollectRunRepository(pgConn)
		collectorService = collectorService.WithRunStore(runRepo)
	}

	// Sem agendador nem API, executa um único run (modo batch) e sai
	if !cfg.CollectSync.Enabled && !cfg.Server.Enabled {
		runOnce(ctx, cfg, collectorService)
		return
	}

	syncService := scheduler.NewCollectSyncService(collectorService, cfg)
	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o agendador da coleta")
	}

	if cfg.Server.Enabled {
		server, err := api.New(cfg, syncService, runRepo)
		if err != nil {
			logrus.Fatal(err)
		}

		if err := server.Run(ctx); err != nil {
			logrus.Error(err)
		}

		return
	}

	waitForSignal(ctx)
}

// runOnce executa um único run respeitando o gate de slot.
func runOnce(ctx context.Context, cfg *config.Config, collectorService *collector.Service) {
	runCtx, correlationID := log.WithCorrelationID(ctx)
	logger := log.ForContext(runCtx)

	now := utils.NowKST()

	picker := scheduler.NewSlotPicker(cfg.CollectSync.SlotToleranceMinutes)
	slot, ok := picker.Pick(now)
	if !ok {
		logger.WithField("now", now.Format(time.RFC3339)).
			Info("Fora de qualquer janela de slot, nada a fazer")
		return
	}

	logger.WithFields(log.Fields{
		"correlation_id": correlationID,
		"slot":           slot.Label,
	}).Info("Executando run único de coleta")

	if _, err := collectorService.Run(runCtx, now, slot); err != nil {
		logrus.WithError(err).Fatal("Run de coleta falhou")
	}
}

func waitForSignal(ctx context.Context) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
