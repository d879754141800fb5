package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Smartstore  Smartstore  `mapstructure:",squash"`
	Cafe24      Cafe24      `mapstructure:",squash"`
	Coupang     Coupang     `mapstructure:",squash"`
	Sheets      Sheets      `mapstructure:",squash"`
	Slack       Slack       `mapstructure:",squash"`
	CollectSync CollectSync `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	DebugDir string `mapstructure:"debug_dir"`
}

type Server struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Enabled bool   `mapstructure:"server_enabled"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Enabled  bool   `mapstructure:"database_enabled"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	URL     string `mapstructure:"-"`
	Version string `mapstructure:"meta_version"`

	BurdenzeroAccessToken string `mapstructure:"meta_burdenzero_access_token"`
	BurdenzeroAdAccountID string `mapstructure:"meta_burdenzero_ad_account_id"`
	BrainologyAccessToken string `mapstructure:"meta_brainology_access_token"`
	BrainologyAdAccountID string `mapstructure:"meta_brainology_ad_account_id"`
}

type Smartstore struct {
	ClientID       string `mapstructure:"naver_commerce_client_id"`
	ClientSecret   string `mapstructure:"naver_commerce_client_secret"`
	TokenCacheFile string `mapstructure:"naver_token_cache_file"`
	Brand          string `mapstructure:"naver_brand"`
	PageSize       int    `mapstructure:"naver_page_size"`
}

type Cafe24 struct {
	BurdenzeroAdminURL     string `mapstructure:"cafe24_burdenzero_admin_url"`
	BurdenzeroDashboardURL string `mapstructure:"cafe24_burdenzero_dashboard_url"`
	BurdenzeroAdminID      string `mapstructure:"cafe24_burdenzero_admin_id"`
	BurdenzeroAdminPW      string `mapstructure:"cafe24_burdenzero_admin_pw"`

	BrainologyAdminURL     string `mapstructure:"cafe24_brainology_admin_url"`
	BrainologyDashboardURL string `mapstructure:"cafe24_brainology_dashboard_url"`
	BrainologyAdminID      string `mapstructure:"cafe24_brainology_admin_id"`
	BrainologyAdminPW      string `mapstructure:"cafe24_brainology_admin_pw"`
}

type Coupang struct {
	LoginURL          string `mapstructure:"coupang_login_url"`
	ID                string `mapstructure:"coupang_id"`
	PW                string `mapstructure:"coupang_pw"`
	SalesURLTemplate  string `mapstructure:"coupang_sales_url_template"`
	ExportURLTemplate string `mapstructure:"coupang_export_url_template"`
}

type Sheets struct {
	SpreadsheetID      string `mapstructure:"gsheet_spreadsheet_id"`
	ServiceAccountJSON string `mapstructure:"google_service_account_json"`
	ServiceAccountFile string `mapstructure:"google_service_account_file"`
	BurdenzeroSheet    string `mapstructure:"gsheet_burdenzero_sheet"`
	BrainologySheet    string `mapstructure:"gsheet_brainology_sheet"`
}

type Slack struct {
	WebhookURL string `mapstructure:"slack_webhook_url"`
}

type CollectSync struct {
	CronSchedule         string `mapstructure:"collect_sync_cron"`
	Enabled              bool   `mapstructure:"collect_sync_enabled"`
	SlotToleranceMinutes int    `mapstructure:"collect_slot_tolerance_minutes"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_ENABLED", false)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/collector")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_ENABLED", false)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v23.0")

	viper.SetDefault("NAVER_TOKEN_CACHE_FILE", ".naver_token_cache.json")
	viper.SetDefault("NAVER_BRAND", "burdenzero")
	viper.SetDefault("NAVER_PAGE_SIZE", 300)

	viper.SetDefault("GSHEET_BURDENZERO_SHEET", "부담제로_지금")
	viper.SetDefault("GSHEET_BRAINOLOGY_SHEET", "뉴턴젤리_지금")

	viper.SetDefault("SLACK_WEBHOOK_URL", "")

	// Slots pares das 10h às 22h (KST); o gate de slot decide se grava
	viper.SetDefault("COLLECT_SYNC_CRON", "0 10-22/2 * * *")
	viper.SetDefault("COLLECT_SYNC_ENABLED", false)
	viper.SetDefault("COLLECT_SLOT_TOLERANCE_MINUTES", 70)

	viper.SetDefault("DEBUG_DIR", "debug")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
