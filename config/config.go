package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Dataset  DatasetConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Identity IdentityConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string
}

// DatasetConfig points at the directory holding doctors.csv and hospitals.csv.
type DatasetConfig struct {
	Dir string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// Identity drivers
const (
	IdentityDriverPostgres = "postgres"
	IdentityDriverFirebase = "firebase"
)

type IdentityConfig struct {
	Driver                  string
	FirebaseCredentialsFile string
	// BootstrapAdminExternalIDs are granted hospital_admin at start-up and on
	// registration, so a fresh deployment has someone able to assign roles.
	BootstrapAdminExternalIDs []string
}

// LoadConfig reads the given .env file and overlays the process environment.
// A missing file is tolerated so the service can run with injected env only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("IDENTITY_DRIVER", IdentityDriverPostgres)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(v.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),

			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Dataset: DatasetConfig{
			Dir: v.GetString("DATA_DIR"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Identity: IdentityConfig{
			Driver:                  v.GetString("IDENTITY_DRIVER"),
			FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),

			BootstrapAdminExternalIDs: splitList(v.GetString("BOOTSTRAP_ADMIN_EXTERNAL_IDS")),
		},
	}

	if config.Identity.Driver != IdentityDriverPostgres && config.Identity.Driver != IdentityDriverFirebase {
		return nil, errors.New("IDENTITY_DRIVER must be postgres or firebase")
	}

	return config, nil
}

// splitList parses a comma-separated value, dropping blanks and duplicates.
func splitList(raw string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
