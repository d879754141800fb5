package smartstore

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

type SmartstoreIntegrator struct {
	cfg    *config.Config
	Client *Client
}

func New(cfg *config.Config, client *Client) *SmartstoreIntegrator {
	return &SmartstoreIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *SmartstoreIntegrator) Source() domain.Source {
	return domain.SourceSmartstore
}

// Fetch soma os pedidos pagos do dia (KST) da loja. A loja atende uma
// única marca, definida em NAVER_BRAND.
func (s *SmartstoreIntegrator) Fetch(ctx context.Context, date time.Time) (*domain.SourceResult, error) {
	if s.cfg.Smartstore.ClientID == "" || s.cfg.Smartstore.ClientSecret == "" {
		return nil, collecterrors.New(collecterrors.ErrMissingConfig,
			"credenciais da Naver Commerce ausentes").
			WithSource(string(domain.SourceSmartstore)).
			WithHint("defina NAVER_COMMERCE_CLIENT_ID e NAVER_COMMERCE_CLIENT_SECRET")
	}

	brand := domain.Brand(s.cfg.Smartstore.Brand)
	if !brand.Reporting() {
		return nil, collecterrors.Newf(collecterrors.ErrMissingConfig,
			"NAVER_BRAND %q não é uma marca reportada", s.cfg.Smartstore.Brand).
			WithSource(string(domain.SourceSmartstore))
	}

	from, to := utils.KSTDayRange(date)

	rows, err := s.Client.ProductOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := Summarize(rows)

	// Sem filtro de status: tudo que caiu na janela de pagamento conta.
	// O contador por status fica no log para auditoria de cancelamentos.
	logrus.WithFields(logrus.Fields{
		"brand":               brand,
		"sales":               summary.Sales,
		"orders":              summary.Orders,
		"product_order_count": summary.ProductOrderCount,
		"status_counter":      summary.StatusCounter,
	}).Info("smartstore: métricas do dia consolidadas")

	return &domain.SourceResult{
		Source: domain.SourceSmartstore,
		Date:   date,
		ByBrand: map[domain.Brand]domain.NormalizedMetric{
			brand: {
				Source: domain.SourceSmartstore,
				Brand:  brand,
				Date:   date,
				Sales:  summary.Sales,
				Orders: summary.Orders,
			},
		},
	}, nil
}

// Summary consolida as linhas de pedido do dia.
type Summary struct {
	Sales             int
	Orders            int
	ProductOrderCount int
	StatusCounter     map[string]int
}

// Summarize aplica a definição de receita (valor do produto menos
// desconto do produto) e conta compras por orderId único. Linhas de
// produto são contadas à parte.
func Summarize(rows []OrderRow) Summary {
	orderIDs := make(map[string]bool)
	statusCounter := make(map[string]int)

	summary := Summary{}

	for _, row := range rows {
		if orderID := row.Content.Order.OrderID; orderID != "" {
			orderIDs[orderID] = true
		}

		if status := row.Content.ProductOrder.ProductOrderStatus; status != "" {
			statusCounter[status]++
		}

		amount := SafeInt(row.Content.ProductOrder.InitialProductAmount)
		discount := SafeInt(row.Content.ProductOrder.InitialProductDiscountAmount)

		summary.Sales += amount - discount
		summary.ProductOrderCount++
	}

	summary.Orders = len(orderIDs)
	summary.StatusCounter = statusCounter

	return summary
}
