package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/domain"
)

// GetAccountInsights busca os insights do dia no nível da conta, com
// spend e actions para o cálculo de compras atribuídas.
func (c *MetaClient) GetAccountInsights(ctx context.Context, token, accountID string, date time.Time) ([]metadomain.InsightRow, error) {
	ymd := date.Format(time.DateOnly)
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", ymd, ymd)

	params := url.Values{}
	params.Set("fields", "account_id,spend,actions")
	params.Set("level", "account")
	params.Set("time_range", timeRange)
	params.Set("access_token", token)

	requestURL := fmt.Sprintf("%s/%s/insights?%s", c.Cfg.Meta.URL, NormalizeActID(accountID), params.Encode())

	var response metadomain.InsightsResponse
	if err := c.get(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}

// NormalizeActID garante o prefixo act_ exigido pelos endpoints de conta.
func NormalizeActID(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}

	return "act_" + accountID
}
