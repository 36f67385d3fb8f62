package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Shop      ShopConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Endpoint  EndpointConfig
	Printer   PrinterConfig
	Session   SessionConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// ShopConfig is printed on every receipt and drives bill numbering.
type ShopConfig struct {
	Name       string
	Address    string
	Phone      string
	Footer     string
	BillPrefix string
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
}

type CatalogConfig struct {
	SeedFile string
}

type EndpointConfig struct {
	Type         string // "apps_script" or "workbook"
	URL          string
	Timeout      time.Duration
	WorkbookPath string
}

type PrinterConfig struct {
	Type      string // "usb", "network", "spool" or "none"
	Format    string // "escpos" or "pdf"
	USBPath   string
	Address   string
	SpoolDir  string
	CharWidth int
}

type SessionConfig struct {
	// StaffID pre-selects and locks the collecting staff member.
	StaffID string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults(viper.GetViper())
	return FromViper(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "invoice-desk")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("SHOP_NAME", "Akshaya Centre")
	v.SetDefault("SHOP_ADDRESS", "Kolathur - Station Padi")
	v.SetDefault("SHOP_PHONE", "")
	v.SetDefault("SHOP_FOOTER", "")
	v.SetDefault("SHOP_BILL_PREFIX", "AC")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SQLITE_PATH", "invoice-desk.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "invoice_desk")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("CATALOG_SEED_FILE", "")
	v.SetDefault("ENDPOINT_TYPE", "apps_script")
	v.SetDefault("ENDPOINT_URL", "")
	v.SetDefault("ENDPOINT_TIMEOUT_SECONDS", 30)
	v.SetDefault("ENDPOINT_WORKBOOK_PATH", "./storage/invoices.xlsx")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_FORMAT", "pdf")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_SPOOL_DIR", "./storage/print")
	v.SetDefault("PRINTER_CHAR_WIDTH", 32)
	v.SetDefault("SESSION_STAFF_ID", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
}

// FromViper builds the Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	footer := v.GetString("SHOP_FOOTER")
	if footer == "" {
		footer = "Thank you for visiting " + v.GetString("SHOP_NAME") + "!"
	}

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Shop: ShopConfig{
			Name:       v.GetString("SHOP_NAME"),
			Address:    v.GetString("SHOP_ADDRESS"),
			Phone:      v.GetString("SHOP_PHONE"),
			Footer:     footer,
			BillPrefix: v.GetString("SHOP_BILL_PREFIX"),
		},
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			Timezone:   v.GetString("DB_TIMEZONE"),
		},
		Catalog: CatalogConfig{
			SeedFile: v.GetString("CATALOG_SEED_FILE"),
		},
		Endpoint: EndpointConfig{
			Type:         v.GetString("ENDPOINT_TYPE"),
			URL:          v.GetString("ENDPOINT_URL"),
			Timeout:      time.Duration(v.GetInt("ENDPOINT_TIMEOUT_SECONDS")) * time.Second,
			WorkbookPath: v.GetString("ENDPOINT_WORKBOOK_PATH"),
		},
		Printer: PrinterConfig{
			Type:      v.GetString("PRINTER_TYPE"),
			Format:    v.GetString("PRINTER_FORMAT"),
			USBPath:   v.GetString("PRINTER_USB_PATH"),
			Address:   v.GetString("PRINTER_ADDRESS"),
			SpoolDir:  v.GetString("PRINTER_SPOOL_DIR"),
			CharWidth: v.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Session: SessionConfig{
			StaffID: v.GetString("SESSION_STAFF_ID"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
