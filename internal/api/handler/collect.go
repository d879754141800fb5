package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/repository"
	"github.com/vfg2006/brand-kpi-collector/internal/scheduler"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TriggerCollect dispara um run manual. O gate de slot continua
// valendo: fora de janela o run é pulado e isso aparece nos logs.
func TriggerCollect(syncService *scheduler.CollectSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TriggerCollect")

		syncService.TriggerManualRun()

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":  "accepted",
			"message": "Run de coleta disparado",
		})
	}
}

// LatestRun devolve o último run persistido no histórico.
func LatestRun(runs repository.CollectRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runs == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "histórico de runs desabilitado (DATABASE_ENABLED=false)",
			})
			return
		}

		run, err := runs.GetLatest()
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar o último run")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "falha ao consultar o histórico de runs",
			})
			return
		}

		if run == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "nenhum run registrado",
			})
			return
		}

		writeJSON(w, http.StatusOK, run)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Erro ao serializar a resposta")
	}
}
