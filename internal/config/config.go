package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/devanpatel28/codegrin-backend/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base
		Bucket    string `yaml:"bucket"`     // for S3/R2
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3/R2
		SecretKey string `yaml:"secret_key"` // for S3/R2
		Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
		Folder    string `yaml:"folder"`     // key prefix for portfolio images
	} `yaml:"storage"`

	Upload UploadConfig `yaml:"upload"`

	Email EmailConfig `yaml:"email"`
}

type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`      // max file size in bytes
	MaxFiles     int      `yaml:"max_files"`     // max files per request
	AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	ContactEmail string `yaml:"contact_email"` // where contact-form mail lands
}

var AppConfig *Config

// LoadConfig reads config from DATABASE_DSN and friends when set (tests,
// containers), otherwise from the yaml file at CONFIG_PATH.
func LoadConfig() {
	var cfg Config

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		if cfg.Server.Port == 0 {
			cfg.Server.Port = 3001
		}
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTLHours = 24 * 7

		cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
		cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
		cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/uploads")
		cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
		cfg.Storage.Region = os.Getenv("STORAGE_REGION")
		cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
		cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
		cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
		cfg.Storage.Folder = envOr("STORAGE_FOLDER", "codegrin/portfolio_images")

		cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
		cfg.Email.SMTPPort, _ = strconv.Atoi(envOr("SMTP_PORT", "465"))
		cfg.Email.SMTPUser = os.Getenv("SMTP_USER")
		cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
		cfg.Email.FromEmail = os.Getenv("SMTP_FROM_EMAIL")
		cfg.Email.FromName = envOr("SMTP_FROM_NAME", "CodeGrin")
		cfg.Email.ContactEmail = os.Getenv("CONTACT_EMAIL")

		applyUploadDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		logger.Fatal("Failed to open config file", "path", configPath, "error", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		logger.Fatal("Failed to parse config file", "path", configPath, "error", err)
	}

	applyUploadDefaults(&cfg)
	AppConfig = &cfg
}

func applyUploadDefaults(cfg *Config) {
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 10
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/webp", "image/jpeg", "image/jpg", "image/png", "image/gif",
		}
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24 * 7
	}
	if cfg.Storage.Folder == "" {
		cfg.Storage.Folder = "codegrin/portfolio_images"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetConfig lazily loads configuration on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
