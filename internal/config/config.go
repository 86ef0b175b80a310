package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres or mysql
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		Secret           string `yaml:"secret"`
		AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
	} `yaml:"jwt"`

	Session struct {
		TTLDays int `yaml:"ttl_days"`
	} `yaml:"session"`

	Job struct {
		RepostCooldownDays int `yaml:"repost_cooldown_days"`
	} `yaml:"job"`

	Security struct {
		// Paths served without the auth middleware; consulted once at
		// route registration.
		PublicPaths []string `yaml:"public_paths"`
	} `yaml:"security"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Email EmailConfig `yaml:"email"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	From         string `yaml:"from"`
}

// Configured reports whether SMTP delivery can be used.
func (e EmailConfig) Configured() bool {
	return e.SMTPHost != "" && e.From != ""
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (test/deploy mode).
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

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.Driver = envOr("DATABASE_DRIVER", "postgres")
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.Session.TTLDays == 0 {
		cfg.Session.TTLDays = 30
	}
	if cfg.Job.RepostCooldownDays == 0 {
		cfg.Job.RepostCooldownDays = 7
	}
	if len(cfg.Security.PublicPaths) == 0 {
		// Entries are "METHOD route-template" or a bare template for all
		// methods; templates use gin parameter syntax.
		cfg.Security.PublicPaths = []string{
			"POST /api/users/signup",
			"POST /api/users/login",
			"POST /api/users/recovery/initiate",
			"POST /api/users/recovery/complete",
			"POST /api/auth/renewAccessToken",
			"GET /api/jobs",
			"GET /api/jobs/:id",
			"GET /api/companies",
			"GET /api/companies/:id",
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
