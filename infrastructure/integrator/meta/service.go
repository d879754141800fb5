package meta

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

// Profile liga uma marca ao par token/conta de anúncios usado na coleta.
type Profile struct {
	Brand       domain.Brand
	AccessToken string
	AdAccountID string
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) Source() domain.Source {
	return domain.SourceMeta
}

// Fetch valida cada perfil (token, escopos, atribuição da conta) e só
// então busca os insights do dia. Qualquer perfil inválido derruba a
// fonte inteira: investimento parcial induziria um ROAS errado.
func (s *MetaIntegrator) Fetch(ctx context.Context, date time.Time) (*domain.SourceResult, error) {
	profiles, err := s.profiles()
	if err != nil {
		return nil, err
	}

	result := &domain.SourceResult{
		Source:  domain.SourceMeta,
		Date:    date,
		ByBrand: make(map[domain.Brand]domain.NormalizedMetric),
	}

	for _, profile := range profiles {
		if err := s.preflight(ctx, profile); err != nil {
			return nil, err
		}

		rows, err := s.Client.GetAccountInsights(ctx, profile.AccessToken, profile.AdAccountID, date)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"brand": profile.Brand,
				"error": err.Error(),
			}).Error("insights: failed to get ad account insights from API")
			return nil, err
		}

		spend, purchases := sumInsights(rows, date)

		logrus.WithFields(logrus.Fields{
			"brand":     profile.Brand,
			"spend":     spend,
			"purchases": purchases,
		}).Debug("insights: successfully retrieved ad account metrics")

		result.ByBrand[profile.Brand] = domain.NormalizedMetric{
			Source: domain.SourceMeta,
			Brand:  profile.Brand,
			Date:   date,
			Spend:  spend,
			Orders: purchases,
		}
	}

	return result, nil
}

func (s *MetaIntegrator) profiles() ([]Profile, error) {
	profiles := []Profile{
		{
			Brand:       domain.BrandBurdenzero,
			AccessToken: s.cfg.Meta.BurdenzeroAccessToken,
			AdAccountID: s.cfg.Meta.BurdenzeroAdAccountID,
		},
		{
			Brand:       domain.BrandBrainology,
			AccessToken: s.cfg.Meta.BrainologyAccessToken,
			AdAccountID: s.cfg.Meta.BrainologyAdAccountID,
		},
	}

	for _, profile := range profiles {
		if profile.AccessToken == "" || profile.AdAccountID == "" {
			return nil, collecterrors.Newf(collecterrors.ErrMissingConfig,
				"perfil Meta da marca %s sem token ou conta de anúncios", profile.Brand).
				WithSource(string(domain.SourceMeta)).
				WithHint("defina META_<MARCA>_ACCESS_TOKEN e META_<MARCA>_AD_ACCOUNT_ID")
		}
	}

	return profiles, nil
}

// sumInsights soma spend e compras atribuídas das linhas do dia alvo.
func sumInsights(rows []metadomain.InsightRow, date time.Time) (float64, int) {
	ymd := date.Format(time.DateOnly)

	var spend float64
	var purchases int

	for _, row := range rows {
		if row.DateStart != "" && row.DateStart != ymd {
			continue
		}

		if value, err := strconv.ParseFloat(row.Spend, 64); err == nil {
			spend += value
		}

		for _, action := range row.Actions {
			if !metadomain.IsPurchaseAction(action.ActionType) {
				continue
			}

			if value, err := strconv.ParseFloat(action.Value, 64); err == nil {
				purchases += int(value)
			}
		}
	}

	return spend, purchases
}
