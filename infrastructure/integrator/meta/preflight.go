package meta

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

var requiredScopes = []string{"ads_read", "read_insights"}

// preflight valida o perfil em três etapas, cada uma com um erro
// distinto: token inválido, escopo ausente e conta não atribuída.
func (s *MetaIntegrator) preflight(ctx context.Context, profile Profile) error {
	debug, err := s.Client.DebugToken(ctx, profile.AccessToken)
	if err != nil {
		return err
	}

	if !debug.IsValid {
		return collecterrors.Newf(collecterrors.ErrInvalidToken,
			"token da marca %s é inválido ou foi revogado", profile.Brand).
			WithSource(string(domain.SourceMeta)).
			WithHint("gere um novo token de usuário de sistema no Business Manager")
	}

	permissions, err := s.Client.GetPermissions(ctx, profile.AccessToken)
	if err != nil {
		return err
	}

	granted := make(map[string]bool, len(permissions))
	for _, permission := range permissions {
		if permission.Status == "granted" {
			granted[permission.Permission] = true
		}
	}

	for _, scope := range requiredScopes {
		if !granted[scope] {
			return collecterrors.Newf(collecterrors.ErrMissingScope,
				"token da marca %s sem o escopo %s", profile.Brand, scope).
				WithSource(string(domain.SourceMeta)).
				WithHint("marque ads_read e read_insights ao gerar o token de sistema")
		}
	}

	accounts, err := s.Client.GetAdAccounts(ctx, profile.AccessToken)
	if err != nil {
		return err
	}

	target := metaclient.NormalizeActID(profile.AdAccountID)

	for _, account := range accounts {
		if account.ID == target || metaclient.NormalizeActID(account.AccountID) == target {
			logrus.WithFields(logrus.Fields{
				"brand":      profile.Brand,
				"account_id": target,
			}).Debug("preflight: perfil válido")

			return nil
		}
	}

	return collecterrors.Newf(collecterrors.ErrAssetNotAssigned,
		"conta %s não está atribuída ao token da marca %s", target, profile.Brand).
		WithSource(string(domain.SourceMeta)).
		WithHint("atribua a conta de anúncios ao usuário de sistema em Business Settings > Ad Accounts")
}
