package cafe24

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/scraper"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/retry"
)

// totalOrderLabel é o rótulo do card de vendas do dia no admin da Cafe24.
const totalOrderLabel = "총 주문 금액"

// todayHeader é o cabeçalho da coluna usada pela estratégia secundária.
const todayHeader = "오늘"

const (
	loginWaitTimeout  = 10 * time.Second
	loginPollInterval = 1 * time.Second
	navigateRetries   = 1
	navigateDelay     = 2 * time.Second
)

var loginForm = scraper.LoginForm{
	UserFields: []string{"loginId", "admin_id", "userid", "id"},
	PassFields: []string{"loginPasswd", "admin_passwd", "userpasswd", "password"},
}

// Profile liga uma marca às credenciais do admin correspondente.
type Profile struct {
	Brand        domain.Brand
	AdminURL     string
	DashboardURL string
	AdminID      string
	AdminPW      string
}

type Cafe24Integrator struct {
	cfg *config.Config

	// newSession é substituível nos testes
	newSession func(label string) (*scraper.Session, error)
}

func New(cfg *config.Config) *Cafe24Integrator {
	return &Cafe24Integrator{
		cfg: cfg,
		newSession: func(label string) (*scraper.Session, error) {
			return scraper.NewSession(label, cfg.App.DebugDir)
		},
	}
}

func (s *Cafe24Integrator) Source() domain.Source {
	return domain.SourceCafe24
}

// Fetch percorre os perfis de admin das duas marcas. A falha de um
// perfil derruba a fonte: o agregador decide a degradação.
func (s *Cafe24Integrator) Fetch(ctx context.Context, date time.Time) (*domain.SourceResult, error) {
	profiles, err := s.profiles()
	if err != nil {
		return nil, err
	}

	result := &domain.SourceResult{
		Source:  domain.SourceCafe24,
		Date:    date,
		ByBrand: make(map[domain.Brand]domain.NormalizedMetric),
	}

	for _, profile := range profiles {
		metric, err := s.fetchProfile(ctx, profile, date)
		if err != nil {
			return nil, err
		}

		result.ByBrand[profile.Brand] = *metric
	}

	return result, nil
}

func (s *Cafe24Integrator) fetchProfile(ctx context.Context, profile Profile, date time.Time) (*domain.NormalizedMetric, error) {
	session, err := s.newSession("cafe24_" + string(profile.Brand))
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha ao abrir a sessão").WithSource(string(domain.SourceCafe24))
	}

	if err := s.login(ctx, session, profile); err != nil {
		session.Snapshot("login_failed")
		return nil, err
	}

	var doc *goquery.Document

	navigate := retry.New(navigateRetries, navigateDelay, collecterrors.IsTransient)
	err = navigate.Do(ctx, "cafe24_dashboard", func() error {
		var navErr error
		doc, navErr = session.Navigate(profile.DashboardURL)
		return navErr
	})
	if err != nil {
		session.Snapshot("dashboard_failed")
		return nil, err
	}

	chain := scraper.NewChain(
		scraper.LabelSiblingStrategy{Label: totalOrderLabel},
		scraper.HeaderColumnStrategy{Header: todayHeader},
		scraper.RawScanStrategy{Label: totalOrderLabel},
	)

	raw, err := chain.Extract(doc)
	if err != nil {
		session.Snapshot("extract_failed")
		return nil, collecterrors.Wrap(err, collecterrors.ErrExtraction,
			"painel da Cafe24 sem o valor do dia").WithSource(string(domain.SourceCafe24))
	}

	sales, orders, err := scraper.ParseAmountCount(raw)
	if err != nil {
		session.Snapshot("parse_failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"brand":  profile.Brand,
		"sales":  sales,
		"orders": orders,
	}).Info("cafe24: métricas do dia extraídas")

	return &domain.NormalizedMetric{
		Source: domain.SourceCafe24,
		Brand:  profile.Brand,
		Date:   date,
		Sales:  sales,
		Orders: orders,
	}, nil
}

// login espera o formulário ficar disponível dentro do prazo e valida
// que a sessão saiu da tela de login.
func (s *Cafe24Integrator) login(ctx context.Context, session *scraper.Session, profile Profile) error {
	var landed *goquery.Document

	poller := retry.NewPoller(loginWaitTimeout, loginPollInterval)
	err := poller.Wait(ctx, "formulário de login da Cafe24", func() (bool, error) {
		doc, loginErr := session.Login(profile.AdminURL, profile.AdminID, profile.AdminPW, loginForm)
		if loginErr != nil {
			if collecterrors.IsTransient(loginErr) {
				logrus.WithError(loginErr).WithField("brand", profile.Brand).
					Debug("cafe24: página de login ainda não disponível")
				return false, nil
			}
			return false, loginErr
		}

		landed = doc
		return true, nil
	})
	if err != nil {
		return collecterrors.Wrap(err, collecterrors.ErrExtraction,
			"login da Cafe24 não completou").WithSource(string(domain.SourceCafe24))
	}

	// Ainda na tela de login => credenciais rejeitadas
	if landed.Find("input[type='password']").Length() > 0 {
		return collecterrors.Newf(collecterrors.ErrInvalidToken,
			"credenciais da Cafe24 rejeitadas para a marca %s", profile.Brand).
			WithSource(string(domain.SourceCafe24)).
			WithHint("confira CAFE24_<MARCA>_ADMIN_ID e CAFE24_<MARCA>_ADMIN_PW")
	}

	return nil
}

func (s *Cafe24Integrator) profiles() ([]Profile, error) {
	profiles := []Profile{
		{
			Brand:        domain.BrandBurdenzero,
			AdminURL:     s.cfg.Cafe24.BurdenzeroAdminURL,
			DashboardURL: s.cfg.Cafe24.BurdenzeroDashboardURL,
			AdminID:      s.cfg.Cafe24.BurdenzeroAdminID,
			AdminPW:      s.cfg.Cafe24.BurdenzeroAdminPW,
		},
		{
			Brand:        domain.BrandBrainology,
			AdminURL:     s.cfg.Cafe24.BrainologyAdminURL,
			DashboardURL: s.cfg.Cafe24.BrainologyDashboardURL,
			AdminID:      s.cfg.Cafe24.BrainologyAdminID,
			AdminPW:      s.cfg.Cafe24.BrainologyAdminPW,
		},
	}

	for _, profile := range profiles {
		if profile.AdminURL == "" || profile.DashboardURL == "" ||
			profile.AdminID == "" || profile.AdminPW == "" {
			return nil, collecterrors.Newf(collecterrors.ErrMissingConfig,
				"perfil Cafe24 da marca %s incompleto", profile.Brand).
				WithSource(string(domain.SourceCafe24)).
				WithHint("defina CAFE24_<MARCA>_ADMIN_URL, _DASHBOARD_URL, _ADMIN_ID e _ADMIN_PW")
		}
	}

	return profiles, nil
}
