package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/domain"
)

// DebugToken consulta /debug_token para validar o token antes da coleta
func (c *MetaClient) DebugToken(ctx context.Context, token string) (*metadomain.DebugTokenData, error) {
	params := url.Values{}
	params.Set("input_token", token)
	params.Set("access_token", token)

	requestURL := fmt.Sprintf("%s/debug_token?%s", c.Cfg.Meta.URL, params.Encode())

	var response metadomain.DebugTokenResponse
	if err := c.get(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	return &response.Data, nil
}

// GetPermissions lista os escopos concedidos ao token (/me/permissions)
func (c *MetaClient) GetPermissions(ctx context.Context, token string) ([]metadomain.Permission, error) {
	params := url.Values{}
	params.Set("access_token", token)

	requestURL := fmt.Sprintf("%s/me/permissions?%s", c.Cfg.Meta.URL, params.Encode())

	var response metadomain.PermissionsResponse
	if err := c.get(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}

// GetAdAccounts lista as contas de anúncio acessíveis ao token (/me/adaccounts)
func (c *MetaClient) GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,account_id,name")
	params.Set("limit", "200")

	requestURL := fmt.Sprintf("%s/me/adaccounts?%s", c.Cfg.Meta.URL, params.Encode())

	var response metadomain.AdAccountsResponse
	if err := c.get(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
