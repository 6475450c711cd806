package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Session      SessionConfig      `yaml:"session"`
	CompanyJWT   CompanyJWTConfig   `yaml:"company_jwt"`
	Email        EmailConfig        `yaml:"email"`
	Storage      StorageConfig      `yaml:"storage"`
	Integrations IntegrationsConfig `yaml:"integrations"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Env     string `yaml:"env"`
	BaseURL string `yaml:"base_url"` // public URL used in verification links
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type SessionConfig struct {
	TTLDays      int    `yaml:"ttl_days"`    // session lifetime, default 7
	CookieName   string `yaml:"cookie_name"` // default "sessionToken"
	CookieSecure bool   `yaml:"cookie_secure"`
}

type CompanyJWTConfig struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttl_hours"` // default 24
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
}

type StorageConfig struct {
	Type      string `yaml:"type"`       // local, s3, cloudflare_r2
	BasePath  string `yaml:"base_path"`  // for local storage
	BaseURL   string `yaml:"base_url"`   // public URL base
	Bucket    string `yaml:"bucket"`     // for S3/R2
	Region    string `yaml:"region"`     // for S3
	AccessKey string `yaml:"access_key"` // for S3/R2
	SecretKey string `yaml:"secret_key"` // for S3/R2
	Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
}

type IntegrationsConfig struct {
	GitHubToken       string `yaml:"github_token"` // optional, raises rate limits
	GitHubBaseURL     string `yaml:"github_base_url"`
	LeetCodeBaseURL   string `yaml:"leetcode_base_url"`
	CodeforcesBaseURL string `yaml:"codeforces_base_url"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test / container deployments).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.applyDefaults()
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = os.Getenv("SERVER_BASE_URL")
	cfg.CompanyJWT.Secret = os.Getenv("COMPANY_JWT_SECRET")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	cfg.applyDefaults()
	AppConfig = &cfg
}

func (c *Config) applyDefaults() {
	if c.Session.TTLDays == 0 {
		c.Session.TTLDays = 7
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sessionToken"
	}
	if c.CompanyJWT.TTLHours == 0 {
		c.CompanyJWT.TTLHours = 24
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Kairo"
	}
	if c.Integrations.GitHubBaseURL == "" {
		c.Integrations.GitHubBaseURL = "https://api.github.com"
	}
	if c.Integrations.LeetCodeBaseURL == "" {
		c.Integrations.LeetCodeBaseURL = "https://leetcode-stats-api.herokuapp.com"
	}
	if c.Integrations.CodeforcesBaseURL == "" {
		c.Integrations.CodeforcesBaseURL = "https://codeforces.com/api"
	}
	if !c.Session.CookieSecure && c.Server.Env == "production" {
		c.Session.CookieSecure = true
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
