package spreadsheet

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vfg2006/brand-kpi-collector/internal/config"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

// ValuesAPI abstrai as operações de valores usadas pelo upsert de slot.
type ValuesAPI interface {
	Get(sheetName, a1Range string) ([][]interface{}, error)
	Update(sheetName, a1Range string, values [][]interface{}) error
	Append(sheetName, a1Range string, values [][]interface{}) error
}

// GoogleValues implementa ValuesAPI sobre a API v4 do Google Sheets
// autenticada por service account.
type GoogleValues struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewGoogleValues(ctx context.Context, cfg config.Sheets) (*GoogleValues, error) {
	if cfg.SpreadsheetID == "" {
		return nil, collecterrors.New(collecterrors.ErrMissingConfig,
			"GSHEET_SPREADSHEET_ID ausente")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrMissingConfig,
			"credenciais de service account inválidas").
			WithHint("confira o JSON em GOOGLE_SERVICE_ACCOUNT_JSON ou o arquivo em GOOGLE_SERVICE_ACCOUNT_FILE")
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(credentials))
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrSheetUpsert,
			"falha ao criar o cliente do Google Sheets")
	}

	return &GoogleValues{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

func loadCredentials(cfg config.Sheets) ([]byte, error) {
	if cfg.ServiceAccountJSON != "" {
		return []byte(cfg.ServiceAccountJSON), nil
	}

	if cfg.ServiceAccountFile != "" {
		data, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, collecterrors.Wrap(err, collecterrors.ErrMissingConfig,
				"não foi possível ler o arquivo de service account")
		}
		return data, nil
	}

	return nil, collecterrors.New(collecterrors.ErrMissingConfig,
		"credenciais do Google Sheets ausentes").
		WithHint("defina GOOGLE_SERVICE_ACCOUNT_JSON ou GOOGLE_SERVICE_ACCOUNT_FILE")
}

func (g *GoogleValues) Get(sheetName, a1Range string) ([][]interface{}, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, fmt.Sprintf("%s!%s", sheetName, a1Range)).
		Do()
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrSheetUpsert,
			"falha ao ler valores da planilha")
	}

	return resp.Values, nil
}

func (g *GoogleValues) Update(sheetName, a1Range string, values [][]interface{}) error {
	_, err := g.service.Spreadsheets.Values.
		Update(g.spreadsheetID, fmt.Sprintf("%s!%s", sheetName, a1Range), &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return collecterrors.Wrap(err, collecterrors.ErrSheetUpsert,
			"falha ao gravar valores na planilha")
	}

	return nil
}

func (g *GoogleValues) Append(sheetName, a1Range string, values [][]interface{}) error {
	_, err := g.service.Spreadsheets.Values.
		Append(g.spreadsheetID, fmt.Sprintf("%s!%s", sheetName, a1Range), &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return collecterrors.Wrap(err, collecterrors.ErrSheetUpsert,
			"falha ao anexar linha na planilha")
	}

	return nil
}
