package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	// Auth is the single-admin credential pair. PasswordHash is a bcrypt
	// hash; Password is a plain-text dev fallback used only when no hash is
	// configured. TOTPSecret enables a second factor when set.
	Auth struct {
		AdminEmail   string `mapstructure:"admin_email"`
		Password     string `mapstructure:"password"`
		PasswordHash string `mapstructure:"password_hash"`
		TOTPSecret   string `mapstructure:"totp_secret"`
	} `mapstructure:"auth"`

	// Seller is the fixed masthead printed on every invoice.
	Seller struct {
		Name       string `mapstructure:"name"`
		Tagline    string `mapstructure:"tagline"`
		Address    string `mapstructure:"address"`
		GSTIN      string `mapstructure:"gstin"`
		State      string `mapstructure:"state"`
		StateCode  string `mapstructure:"state_code"`
		Phone      string `mapstructure:"phone"`
		Proprietor string `mapstructure:"proprietor"`
	} `mapstructure:"seller"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	// Archive configures offsite PDF archival to an S3-compatible bucket
	// (Cloudflare R2 in production). Disabled unless all fields are set.
	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "billing-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "billing_db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("seller.name", "RAMAKRISHNA FABRICS")
	v.SetDefault("seller.tagline", "DYED CASEMENT GREY CLOTH MANUFACTURERS")
	v.SetDefault("seller.address", "#6-6-56/1, Geetha nagar, SIRCILLA - 505 301, Dist: Rajanna Sircilla. (T.S.)")
	v.SetDefault("seller.gstin", "36AAQPE5740B12X")
	v.SetDefault("seller.state", "Telangana")
	v.SetDefault("seller.state_code", "36")
	v.SetDefault("seller.phone", "Cell: 9440915624, 7382562207")
	v.SetDefault("seller.proprietor", "Eega Balaji")
	v.SetDefault("archive.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not found in config or environment")
		}
	}

	// Admin credentials from environment take precedence over the file
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		cfg.Auth.AdminEmail = email
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Auth.PasswordHash = hash
	}
	if cfg.Auth.AdminEmail == "" {
		log.Fatal("auth.admin_email not configured")
	}
	if cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "" {
		log.Fatal("no admin password or password hash configured")
	}

	// Archive credentials come from the environment only
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}

	return &cfg
}
