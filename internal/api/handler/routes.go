package handler

import (
	"net/http"

	"github.com/vfg2006/brand-kpi-collector/infrastructure/repository"
	"github.com/vfg2006/brand-kpi-collector/internal/api/handler/router"
	"github.com/vfg2006/brand-kpi-collector/internal/scheduler"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Collect(syncService *scheduler.CollectSyncService, runs repository.CollectRunRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/collect",
			Method:  http.MethodPost,
			Handler: TriggerCollect(syncService),
		},
		{
			Path:    "/v1/runs/latest",
			Method:  http.MethodGet,
			Handler: LatestRun(runs),
		},
	}
}
