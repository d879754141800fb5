package coupang

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/scraper"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/retry"
)

const (
	loginWaitTimeout  = 10 * time.Second
	loginPollInterval = 1 * time.Second

	// seletor do contêiner principal da página de vendas do Wing
	salesReadySelector = "#business-insights-layout__contents__main"
)

var loginForm = scraper.LoginForm{
	UserFields: []string{"username", "loginId", "email"},
	PassFields: []string{"password", "loginPw"},
}

type CoupangIntegrator struct {
	cfg *config.Config

	newSession func(label string) (*scraper.Session, error)
}

func New(cfg *config.Config) *CoupangIntegrator {
	return &CoupangIntegrator{
		cfg: cfg,
		newSession: func(label string) (*scraper.Session, error) {
			return scraper.NewSession(label, cfg.App.DebugDir)
		},
	}
}

func (s *CoupangIntegrator) Source() domain.Source {
	return domain.SourceCoupang
}

// Fetch baixa o export de vendas do dia no Wing e consolida o líquido
// por marca via classificação do nome do produto. O download tem
// exatamente uma retentativa, precedida de renavegação completa.
func (s *CoupangIntegrator) Fetch(ctx context.Context, date time.Time) (*domain.SourceResult, error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	session, err := s.newSession("coupang")
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha ao abrir a sessão").WithSource(string(domain.SourceCoupang))
	}

	if err := s.login(ctx, session); err != nil {
		session.Snapshot("login_failed")
		return nil, err
	}

	ymd := date.Format(time.DateOnly)
	salesURL := expandTemplate(s.cfg.Coupang.SalesURLTemplate, ymd)
	exportURL := expandTemplate(s.cfg.Coupang.ExportURLTemplate, ymd)

	if err := s.openSales(ctx, session, salesURL); err != nil {
		session.Snapshot("sales_failed")
		return nil, err
	}

	var payload []byte

	err = retry.DoWithReset(ctx, "coupang_export",
		func() error {
			data, _, downloadErr := session.Download(exportURL)
			if downloadErr != nil {
				return downloadErr
			}

			payload = data
			return nil
		},
		func() error {
			return s.openSales(ctx, session, salesURL)
		},
	)
	if err != nil {
		session.Snapshot("export_failed")
		return nil, collecterrors.Wrap(err, collecterrors.ErrExtraction,
			"export de vendas da Coupang indisponível").WithSource(string(domain.SourceCoupang))
	}

	totals, err := ParseWorkbook(payload)
	if err != nil {
		return nil, err
	}

	// Cobertura da classificação: produtos sem marca são descartados,
	// mas ficam tabulados no log para auditoria.
	logrus.WithFields(logrus.Fields{
		"unclassified_count": totals.UnclassifiedCount,
		"unclassified_sales": totals.UnclassifiedSales,
		"ppadi_sales":        totals.ByBrand[taxonomyPpadi].Sales,
	}).Info("coupang: export classificado por marca")

	result := &domain.SourceResult{
		Source:  domain.SourceCoupang,
		Date:    date,
		ByBrand: make(map[domain.Brand]domain.NormalizedMetric),
	}

	for taxonomy, brand := range map[string]domain.Brand{
		taxonomyBurdenzero: domain.BrandBurdenzero,
		taxonomyJelly:      domain.BrandBrainology,
	} {
		entry := totals.ByBrand[taxonomy]
		result.ByBrand[brand] = domain.NormalizedMetric{
			Source: domain.SourceCoupang,
			Brand:  brand,
			Date:   date,
			Sales:  entry.Sales,
			Orders: entry.Orders,
		}
	}

	return result, nil
}

func (s *CoupangIntegrator) login(ctx context.Context, session *scraper.Session) error {
	var landed *goquery.Document

	poller := retry.NewPoller(loginWaitTimeout, loginPollInterval)
	err := poller.Wait(ctx, "formulário de login do Wing", func() (bool, error) {
		doc, loginErr := session.Login(s.cfg.Coupang.LoginURL, s.cfg.Coupang.ID, s.cfg.Coupang.PW, loginForm)
		if loginErr != nil {
			if collecterrors.IsTransient(loginErr) {
				logrus.WithError(loginErr).Debug("coupang: página de login ainda não disponível")
				return false, nil
			}
			return false, loginErr
		}

		landed = doc
		return true, nil
	})
	if err != nil {
		return collecterrors.Wrap(err, collecterrors.ErrExtraction,
			"login do Wing não completou").WithSource(string(domain.SourceCoupang))
	}

	if landed.Find("input[type='password']").Length() > 0 {
		return collecterrors.New(collecterrors.ErrInvalidToken,
			"credenciais do Wing rejeitadas").
			WithSource(string(domain.SourceCoupang)).
			WithHint("confira COUPANG_ID e COUPANG_PW")
	}

	return nil
}

// openSales navega até a página de vendas e espera o contêiner principal.
func (s *CoupangIntegrator) openSales(ctx context.Context, session *scraper.Session, salesURL string) error {
	poller := retry.NewPoller(loginWaitTimeout, loginPollInterval)

	return poller.Wait(ctx, "página de vendas do Wing", func() (bool, error) {
		doc, err := session.Navigate(salesURL)
		if err != nil {
			if collecterrors.IsTransient(err) {
				return false, nil
			}
			return false, err
		}

		return doc.Find(salesReadySelector).Length() > 0, nil
	})
}

func (s *CoupangIntegrator) validateConfig() error {
	missing := s.cfg.Coupang.LoginURL == "" || s.cfg.Coupang.ID == "" || s.cfg.Coupang.PW == "" ||
		s.cfg.Coupang.SalesURLTemplate == "" || s.cfg.Coupang.ExportURLTemplate == ""

	if missing {
		return collecterrors.New(collecterrors.ErrMissingConfig,
			"configuração da Coupang incompleta").
			WithSource(string(domain.SourceCoupang)).
			WithHint("defina COUPANG_LOGIN_URL, COUPANG_ID, COUPANG_PW, COUPANG_SALES_URL_TEMPLATE e COUPANG_EXPORT_URL_TEMPLATE")
	}

	return nil
}

func expandTemplate(template, ymd string) string {
	return strings.ReplaceAll(template, "{date}", ymd)
}
