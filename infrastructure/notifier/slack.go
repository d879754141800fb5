package notifier

import (
	"bytes"
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SlackNotifier envia o resumo do run para um webhook do Slack.
// Webhook vazio desabilita o envio sem erro.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewSlackNotifier(cfg config.Slack) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (n *SlackNotifier) Notify(ctx context.Context, text string) error {
	if n.webhookURL == "" {
		logrus.Debug("slack: webhook não configurado, alerta ignorado")
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha de rede no webhook do Slack")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return collecterrors.Newf(collecterrors.ErrTransientFetch,
			"webhook do Slack retornou status %d", resp.StatusCode)
	}

	return nil
}
