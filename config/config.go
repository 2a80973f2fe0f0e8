package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig database config
type DBConfig struct {
	Type     string `yaml:"type"` // sqlite or postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig system config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server config
type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Secret        string `yaml:"secret"`
	SessionMaxAge int    `yaml:"session_max_age"` // seconds
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// ShopConfig storefront behaviour
type ShopConfig struct {
	Currency        string `yaml:"currency"`       // symbol printed in summaries
	PriceDecimals   int    `yaml:"price_decimals"` // fractional digits of stored prices
	Locale          string `yaml:"locale"`
	CartIdleMinutes int    `yaml:"cart_idle_minutes"`
	CheckoutLogDays int    `yaml:"checkout_log_days"`
}

// CatalogConfig catalog seeding
type CatalogConfig struct {
	SeedFile string `yaml:"seed_file"` // optional CSV with id,name,price,category
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
	Shop     ShopConfig    `yaml:"shop"`
	Catalog  CatalogConfig `yaml:"catalog"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// DefaultAppConfig returns a config runnable without any file
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "ToughShop",
			Location: "Asia/Shanghai",
			Workdir:  "/var/toughshop",
			Debug:    true,
		},
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          1819,
			Secret:        "9b6de5cc-0731-4bf1-8c06-4ea2b8d7b1c9",
			SessionMaxAge: 86400,
		},
		Database: DBConfig{
			Type:     "sqlite",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "toughshop.db",
			User:     "postgres",
			Passwd:   "myroot",
			MaxConn:  100,
			IdleConn: 10,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   "/var/toughshop/logs/toughshop.log",
		},
		Shop: ShopConfig{
			Currency:        "$",
			PriceDecimals:   0,
			Locale:          "en",
			CartIdleMinutes: 1440,
			CheckoutLogDays: 90,
		},
	}
}

// LoadConfig reads the yaml file, falling back to defaults when cfile is
// empty or missing, then applies TOUGHSHOP_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// MustLoadConfig is LoadConfig for main; it also creates the work dirs
func MustLoadConfig(cfile string) *AppConfig {
	cfg, err := LoadConfig(cfile)
	if err != nil {
		panic(err)
	}
	cfg.initDirs()
	return cfg
}

func setEnvString(name string, v *string) {
	if val, ok := os.LookupEnv(name); ok && strings.TrimSpace(val) != "" {
		*v = val
	}
}

func setEnvInt(name string, v *int) {
	if val, ok := os.LookupEnv(name); ok {
		if i, err := cast.ToIntE(strings.TrimSpace(val)); err == nil {
			*v = i
		}
	}
}

func setEnvBool(name string, v *bool) {
	if val, ok := os.LookupEnv(name); ok {
		if b, err := cast.ToBoolE(strings.TrimSpace(val)); err == nil {
			*v = b
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvString("TOUGHSHOP_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvString("TOUGHSHOP_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("TOUGHSHOP_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvString("TOUGHSHOP_WEB_HOST", &cfg.Web.Host)
	setEnvInt("TOUGHSHOP_WEB_PORT", &cfg.Web.Port)
	setEnvString("TOUGHSHOP_WEB_SECRET", &cfg.Web.Secret)
	setEnvInt("TOUGHSHOP_WEB_SESSION_MAX_AGE", &cfg.Web.SessionMaxAge)

	setEnvString("TOUGHSHOP_DB_TYPE", &cfg.Database.Type)
	setEnvString("TOUGHSHOP_DB_HOST", &cfg.Database.Host)
	setEnvInt("TOUGHSHOP_DB_PORT", &cfg.Database.Port)
	setEnvString("TOUGHSHOP_DB_NAME", &cfg.Database.Name)
	setEnvString("TOUGHSHOP_DB_USER", &cfg.Database.User)
	setEnvString("TOUGHSHOP_DB_PWD", &cfg.Database.Passwd)
	setEnvBool("TOUGHSHOP_DB_DEBUG", &cfg.Database.Debug)

	setEnvString("TOUGHSHOP_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("TOUGHSHOP_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	setEnvString("TOUGHSHOP_SHOP_CURRENCY", &cfg.Shop.Currency)
	setEnvInt("TOUGHSHOP_SHOP_PRICE_DECIMALS", &cfg.Shop.PriceDecimals)
	setEnvString("TOUGHSHOP_SHOP_LOCALE", &cfg.Shop.Locale)
	setEnvInt("TOUGHSHOP_SHOP_CART_IDLE_MINUTES", &cfg.Shop.CartIdleMinutes)
	setEnvInt("TOUGHSHOP_SHOP_CHECKOUT_LOG_DAYS", &cfg.Shop.CheckoutLogDays)

	setEnvString("TOUGHSHOP_CATALOG_SEED_FILE", &cfg.Catalog.SeedFile)
}
