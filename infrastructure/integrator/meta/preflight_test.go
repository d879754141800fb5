package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"go.uber.org/mock/gomock"
)

func testProfile() Profile {
	return Profile{
		Brand:       domain.BrandBurdenzero,
		AccessToken: "token-bz",
		AdAccountID: "111",
	}
}

func TestPreflight(t *testing.T) {
	testCases := []struct {
		name         string
		setup        func(client *mocks.MockClient)
		expectedCode string
	}{
		{
			name: "Perfil válido passa nas três etapas",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().DebugToken(gomock.Any(), "token-bz").
					Return(&metadomain.DebugTokenData{IsValid: true}, nil)
				client.EXPECT().GetPermissions(gomock.Any(), "token-bz").
					Return(grantedPermissions(), nil)
				client.EXPECT().GetAdAccounts(gomock.Any(), "token-bz").
					Return([]metadomain.AdAccount{{ID: "act_111", AccountID: "111"}}, nil)
			},
			expectedCode: "",
		},
		{
			name: "Token inválido interrompe na primeira etapa",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().DebugToken(gomock.Any(), "token-bz").
					Return(&metadomain.DebugTokenData{IsValid: false}, nil)
			},
			expectedCode: collecterrors.ErrInvalidToken,
		},
		{
			name: "Escopo ads_read ausente",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().DebugToken(gomock.Any(), "token-bz").
					Return(&metadomain.DebugTokenData{IsValid: true}, nil)
				client.EXPECT().GetPermissions(gomock.Any(), "token-bz").
					Return([]metadomain.Permission{
						{Permission: "read_insights", Status: "granted"},
					}, nil)
			},
			expectedCode: collecterrors.ErrMissingScope,
		},
		{
			name: "Escopo declinado não conta como concedido",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().DebugToken(gomock.Any(), "token-bz").
					Return(&metadomain.DebugTokenData{IsValid: true}, nil)
				client.EXPECT().GetPermissions(gomock.Any(), "token-bz").
					Return([]metadomain.Permission{
						{Permission: "ads_read", Status: "declined"},
						{Permission: "read_insights", Status: "granted"},
					}, nil)
			},
			expectedCode: collecterrors.ErrMissingScope,
		},
		{
			name: "Conta não atribuída ao token",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().DebugToken(gomock.Any(), "token-bz").
					Return(&metadomain.DebugTokenData{IsValid: true}, nil)
				client.EXPECT().GetPermissions(gomock.Any(), "token-bz").
					Return(grantedPermissions(), nil)
				client.EXPECT().GetAdAccounts(gomock.Any(), "token-bz").
					Return([]metadomain.AdAccount{{ID: "act_999", AccountID: "999"}}, nil)
			},
			expectedCode: collecterrors.ErrAssetNotAssigned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockClient(ctrl)
			tc.setup(client)

			integrator := New(metaConfig(), client)

			err := integrator.preflight(context.Background(), testProfile())

			if tc.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			assert.Equal(t, tc.expectedCode, collecterrors.KindOf(err))
			assert.NotEmpty(t, collecterrors.HintOf(err))
		})
	}
}

func TestPreflightMatchesAccountWithActPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().DebugToken(gomock.Any(), "token-bz").
		Return(&metadomain.DebugTokenData{IsValid: true}, nil)
	client.EXPECT().GetPermissions(gomock.Any(), "token-bz").
		Return(grantedPermissions(), nil)
	client.EXPECT().GetAdAccounts(gomock.Any(), "token-bz").
		Return([]metadomain.AdAccount{{AccountID: "111"}}, nil)

	integrator := New(metaConfig(), client)

	// O perfil pode vir com ou sem o prefixo act_
	profile := testProfile()
	profile.AdAccountID = "act_111"

	assert.NoError(t, integrator.preflight(context.Background(), profile))
}
