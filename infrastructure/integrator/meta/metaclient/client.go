package metaclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

type Client interface {
	DebugToken(ctx context.Context, token string) (*metadomain.DebugTokenData, error)
	GetPermissions(ctx context.Context, token string) ([]metadomain.Permission, error)
	GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error)
	GetAccountInsights(ctx context.Context, token, accountID string, date time.Time) ([]metadomain.InsightRow, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *MetaClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para a API do Meta")
		return collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha ao criar a requisição")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a API do Meta")
		return collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha de rede na API do Meta")
	}
	defer resp.Body.Close()

	body, err := c.handleResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON da API do Meta")
		return collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "resposta ilegível da API do Meta")
	}

	return nil
}

// handleResponse lê o corpo e classifica erros da API: token expirado
// vira erro de autenticação, o restante vira falha transitória.
func (c *MetaClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha ao ler a resposta da API do Meta")
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errorResponse metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err == nil {
		if errorResponse.IsTokenExpired() {
			return nil, collecterrors.Newf(collecterrors.ErrInvalidToken,
				"token expirado ou revogado: %s", errorResponse.Error.Message).
				WithHint("gere um novo token de usuário de sistema no Business Manager")
		}

		if errorResponse.Error.Message != "" {
			return nil, collecterrors.Newf(collecterrors.ErrTransientFetch,
				"API do Meta retornou erro %d: %s", errorResponse.Error.Code, errorResponse.Error.Message)
		}
	}

	return nil, collecterrors.Newf(collecterrors.ErrTransientFetch,
		"API do Meta retornou status %d", resp.StatusCode)
}
