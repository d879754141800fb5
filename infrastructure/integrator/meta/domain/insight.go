package metadomain

// Action é uma ação atribuída retornada pelo endpoint de insights.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights agregada por conta.
type InsightRow struct {
	AccountID string   `json:"account_id"`
	Spend     string   `json:"spend"`
	Actions   []Action `json:"actions"`
	DateStart string   `json:"date_start"`
	DateStop  string   `json:"date_stop"`
}

// InsightsResponse é o envelope do endpoint /act_{id}/insights
type InsightsResponse struct {
	Data []InsightRow `json:"data"`
}

// DebugTokenData é o payload de /debug_token
type DebugTokenData struct {
	AppID     string `json:"app_id"`
	Type      string `json:"type"`
	IsValid   bool   `json:"is_valid"`
	ExpiresAt int64  `json:"expires_at"`
}

type DebugTokenResponse struct {
	Data DebugTokenData `json:"data"`
}

// Permission é um escopo concedido ao token (/me/permissions)
type Permission struct {
	Permission string `json:"permission"`
	Status     string `json:"status"`
}

type PermissionsResponse struct {
	Data []Permission `json:"data"`
}

// AdAccount é uma conta de anúncios acessível ao token (/me/adaccounts)
type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type AdAccountsResponse struct {
	Data []AdAccount `json:"data"`
}
