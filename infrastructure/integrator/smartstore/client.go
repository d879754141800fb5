package smartstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

const (
	apiBase          = "https://api.commerce.naver.com/external"
	tokenPath        = "/v1/oauth2/token"
	productOrderPath = "/v1/pay-order/seller/product-orders"

	tokenSafetyMargin = 60 * time.Second
	defaultPageSize   = 300
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type productOrdersResponse struct {
	Data struct {
		Contents   []OrderRow `json:"contents"`
		Pagination struct {
			HasNext bool `json:"hasNext"`
		} `json:"pagination"`
	} `json:"data"`
}

// OrderRow é uma linha de pedido-produto da API de pay-order.
// Os campos numéricos chegam ora como número ora como string; o
// SafeInt normaliza ambos.
type OrderRow struct {
	Content struct {
		Order struct {
			OrderID string `json:"orderId"`
		} `json:"order"`
		ProductOrder struct {
			ProductOrderStatus           string      `json:"productOrderStatus"`
			InitialProductAmount         interface{} `json:"initialProductAmount"`
			InitialProductDiscountAmount interface{} `json:"initialProductDiscountAmount"`
		} `json:"productOrder"`
	} `json:"content"`
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	tokenCache *TokenCache
	now        func() time.Time
}

func NewClient(cfg *config.Config, tokenCache *TokenCache) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokenCache: tokenCache,
		now:        time.Now,
	}
}

// AccessToken devolve um token válido, emitindo um novo quando o cache
// expira dentro da margem de segurança.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if token, ok := c.tokenCache.Get(tokenSafetyMargin); ok {
		return token, nil
	}

	timestampMS := c.now().UnixMilli()

	sign, err := Sign(c.cfg.Smartstore.ClientID, c.cfg.Smartstore.ClientSecret, timestampMS)
	if err != nil {
		return "", collecterrors.Wrap(err, collecterrors.ErrInvalidToken,
			"falha ao assinar a emissão de token").
			WithHint("confira NAVER_COMMERCE_CLIENT_SECRET: deve ser o salt bcrypt fornecido pela Naver")
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.Smartstore.ClientID)
	form.Set("timestamp", strconv.FormatInt(timestampMS, 10))
	form.Set("client_secret_sign", sign)
	form.Set("grant_type", "client_credentials")
	form.Set("type", "SELF")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+tokenPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha ao montar a emissão de token")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha de rede na emissão de token")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", collecterrors.Newf(collecterrors.ErrInvalidToken,
			"emissão de token retornou %d: %s", resp.StatusCode, string(body)).
			WithHint("confira NAVER_COMMERCE_CLIENT_ID e NAVER_COMMERCE_CLIENT_SECRET")
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "resposta de token ilegível")
	}

	c.tokenCache.Put(token.AccessToken, token.ExpiresIn)

	return token.AccessToken, nil
}

// ProductOrders percorre todas as páginas de pedidos pagos no intervalo,
// por data de pagamento e sem filtro de status.
func (c *Client) ProductOrders(ctx context.Context, from, to time.Time) ([]OrderRow, error) {
	accessToken, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := c.cfg.Smartstore.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var rows []OrderRow
	page := 1

	for {
		params := url.Values{}
		params.Set("from", from.Format("2006-01-02T15:04:05.000-07:00"))
		params.Set("to", to.Format("2006-01-02T15:04:05.000-07:00"))
		params.Set("rangeType", "PAYED_DATETIME")
		params.Set("page", strconv.Itoa(page))
		params.Set("size", strconv.Itoa(pageSize))

		requestURL := fmt.Sprintf("%s%s?%s", apiBase, productOrderPath, params.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha ao montar a consulta de pedidos")
		}

		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "falha de rede na consulta de pedidos")
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, collecterrors.Wrap(readErr, collecterrors.ErrTransientFetch, "falha ao ler a consulta de pedidos")
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, collecterrors.Newf(collecterrors.ErrInvalidToken,
				"consulta de pedidos retornou 401: %s", string(body)).
				WithHint("o token pode ter sido revogado; apague o cache e reemita")
		case resp.StatusCode == http.StatusForbidden:
			return nil, collecterrors.Newf(collecterrors.ErrMissingScope,
				"consulta de pedidos retornou 403: %s", string(body)).
				WithHint("habilite a permissão de pedidos no app da Naver Commerce API")
		case resp.StatusCode != http.StatusOK:
			return nil, collecterrors.Newf(collecterrors.ErrTransientFetch,
				"consulta de pedidos retornou %d: %s", resp.StatusCode, string(body))
		}

		var response productOrdersResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "resposta de pedidos ilegível")
		}

		rows = append(rows, response.Data.Contents...)

		if !response.Data.Pagination.HasNext {
			break
		}

		page++
	}

	logrus.WithFields(logrus.Fields{
		"pages": page,
		"rows":  len(rows),
	}).Debug("smartstore: pedidos do dia carregados")

	return rows, nil
}

// SafeInt normaliza os campos numéricos da API, que oscilam entre
// número e string. Qualquer outra coisa vale zero.
func SafeInt(v interface{}) int {
	switch value := v.(type) {
	case nil:
		return 0
	case bool:
		return 0
	case float64:
		return int(value)
	case int:
		return value
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
