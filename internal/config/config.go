package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted in StoreConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	DB         DBConfig
	Redis      RedisConfig
	S3         S3Config
	Email      EmailConfig
	Log        LogConfig
	Billing    BillingConfig
	Letterhead LetterheadConfig
	CORS       CORSConfig
}

// CORSConfig holds CORS settings for the browser front end.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig selects the record-store backend.
type StoreConfig struct {
	Driver  string `mapstructure:"driver"`
	DataDir string `mapstructure:"data_dir"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds redis connection settings for the redis store driver.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// S3Config holds AWS S3 settings for the invoice archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BillingConfig holds invoice policy settings.
type BillingConfig struct {
	OverdueAfterDays int    `mapstructure:"overdue_after_days"`
	OverdueSweep     string `mapstructure:"overdue_sweep"`
	ArchivePDFs      bool   `mapstructure:"archive_pdfs"`
	DefaultHSN       string `mapstructure:"default_hsn"`
}

// LetterheadConfig holds the company details printed on invoices.
type LetterheadConfig struct {
	CompanyName   string `mapstructure:"company_name"`
	BankName      string `mapstructure:"bank_name"`
	AccountNumber string `mapstructure:"account_number"`
	IFSC          string `mapstructure:"ifsc"`
	UPI           string `mapstructure:"upi"`
	LogoPath      string `mapstructure:"logo_path"`
	FooterPath    string `mapstructure:"footer_path"`
}

// Load reads configuration from environment variables with the HVACBILL_
// prefix, after loading a .env file from the working directory if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HVACBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.data_dir", "data")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "hvacbill")
	v.SetDefault("db.password", "hvacbill_secret")
	v.SetDefault("db.name", "hvacbill")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "hvacbill:")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "hvacbill-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 7*24*3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@vrtechhvac.in")
	v.SetDefault("email.from_name", "VR TECH HVAC Solutions")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Billing defaults
	v.SetDefault("billing.overdue_after_days", 30)
	v.SetDefault("billing.overdue_sweep", "@daily")
	v.SetDefault("billing.archive_pdfs", false)
	v.SetDefault("billing.default_hsn", "995463")

	// Letterhead defaults are empty; the renderer fills in its own.
	v.SetDefault("letterhead.company_name", "")
	v.SetDefault("letterhead.bank_name", "")
	v.SetDefault("letterhead.account_number", "")
	v.SetDefault("letterhead.ifsc", "")
	v.SetDefault("letterhead.upi", "")
	v.SetDefault("letterhead.logo_path", "")
	v.SetDefault("letterhead.footer_path", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "HVACBILL_SERVER_PORT",
		"server.read_timeout":        "HVACBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "HVACBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":         "HVACBILL_SERVER_ENVIRONMENT",
		"store.driver":               "HVACBILL_STORE_DRIVER",
		"store.data_dir":             "HVACBILL_STORE_DATA_DIR",
		"db.host":                    "HVACBILL_DB_HOST",
		"db.port":                    "HVACBILL_DB_PORT",
		"db.user":                    "HVACBILL_DB_USER",
		"db.password":                "HVACBILL_DB_PASSWORD",
		"db.name":                    "HVACBILL_DB_NAME",
		"db.sslmode":                 "HVACBILL_DB_SSLMODE",
		"db.max_open":                "HVACBILL_DB_MAX_OPEN",
		"db.max_idle":                "HVACBILL_DB_MAX_IDLE",
		"redis.addr":                 "HVACBILL_REDIS_ADDR",
		"redis.password":             "HVACBILL_REDIS_PASSWORD",
		"redis.db":                   "HVACBILL_REDIS_DB",
		"redis.key_prefix":           "HVACBILL_REDIS_KEY_PREFIX",
		"s3.region":                  "HVACBILL_S3_REGION",
		"s3.bucket":                  "HVACBILL_S3_BUCKET",
		"s3.endpoint":                "HVACBILL_S3_ENDPOINT",
		"s3.access_key":              "HVACBILL_S3_ACCESS_KEY",
		"s3.secret_key":              "HVACBILL_S3_SECRET_KEY",
		"s3.presign_expiry":          "HVACBILL_S3_PRESIGN_EXPIRY",
		"email.provider":             "HVACBILL_EMAIL_PROVIDER",
		"email.region":               "HVACBILL_EMAIL_REGION",
		"email.from_address":         "HVACBILL_EMAIL_FROM_ADDRESS",
		"email.from_name":            "HVACBILL_EMAIL_FROM_NAME",
		"log.level":                  "HVACBILL_LOG_LEVEL",
		"log.format":                 "HVACBILL_LOG_FORMAT",
		"billing.overdue_after_days": "HVACBILL_BILLING_OVERDUE_AFTER_DAYS",
		"billing.overdue_sweep":      "HVACBILL_BILLING_OVERDUE_SWEEP",
		"billing.archive_pdfs":       "HVACBILL_BILLING_ARCHIVE_PDFS",
		"billing.default_hsn":        "HVACBILL_BILLING_DEFAULT_HSN",
		"letterhead.company_name":    "HVACBILL_LETTERHEAD_COMPANY_NAME",
		"letterhead.bank_name":       "HVACBILL_LETTERHEAD_BANK_NAME",
		"letterhead.account_number":  "HVACBILL_LETTERHEAD_ACCOUNT_NUMBER",
		"letterhead.ifsc":            "HVACBILL_LETTERHEAD_IFSC",
		"letterhead.upi":             "HVACBILL_LETTERHEAD_UPI",
		"letterhead.logo_path":       "HVACBILL_LETTERHEAD_LOGO_PATH",
		"letterhead.footer_path":     "HVACBILL_LETTERHEAD_FOOTER_PATH",
		"cors.allowed_origins":       "HVACBILL_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if HVACBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HVACBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Driver:  strings.ToLower(v.GetString("store.driver")),
		DataDir: v.GetString("store.data_dir"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		Addr:      v.GetString("redis.addr"),
		Password:  v.GetString("redis.password"),
		DB:        v.GetInt("redis.db"),
		KeyPrefix: v.GetString("redis.key_prefix"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Billing = BillingConfig{
		OverdueAfterDays: v.GetInt("billing.overdue_after_days"),
		OverdueSweep:     v.GetString("billing.overdue_sweep"),
		ArchivePDFs:      v.GetBool("billing.archive_pdfs"),
		DefaultHSN:       v.GetString("billing.default_hsn"),
	}
	cfg.Letterhead = LetterheadConfig{
		CompanyName:   v.GetString("letterhead.company_name"),
		BankName:      v.GetString("letterhead.bank_name"),
		AccountNumber: v.GetString("letterhead.account_number"),
		IFSC:          v.GetString("letterhead.ifsc"),
		UPI:           v.GetString("letterhead.upi"),
		LogoPath:      v.GetString("letterhead.logo_path"),
		FooterPath:    v.GetString("letterhead.footer_path"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Billing.OverdueAfterDays < 0 {
		return fmt.Errorf("billing.overdue_after_days must not be negative")
	}
	return nil
}
