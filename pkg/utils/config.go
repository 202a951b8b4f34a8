package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	View    ViewConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// APIConfig describes the remote REST backend both catalogs talk to.
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxIdleConns   int
	MaxUploadBytes int64
}

type SessionConfig struct {
	Secret string
	Secure bool
	MaxAge int // seconds
}

type ViewConfig struct {
	TTL       time.Duration
	CacheSize int
	MaxDrafts int
	Locale    string
}

// LoadConfig reads .env from the working directory (if present) and the environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with an explicit env file path.
// A missing file is not an error; the environment and defaults still apply.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "catalog-web")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("API_BASE_URL", "http://localhost:5291/api")
	v.SetDefault("API_TIMEOUT_SECONDS", 15)
	v.SetDefault("API_MAX_IDLE_CONNS", 10)
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("SESSION_MAX_AGE_HOURS", 24)
	v.SetDefault("VIEW_TTL_MINUTES", 30)
	v.SetDefault("VIEW_CACHE_SIZE", 1024)
	v.SetDefault("VIEW_MAX_DRAFTS", 8)
	v.SetDefault("LIST_LOCALE", "en")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()
	// The Next.js front-end used NEXT_PUBLIC_API_BASE_URL; keep honouring it.
	if err := v.BindEnv("API_BASE_URL", "API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"); err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL:        v.GetString("API_BASE_URL"),
			Timeout:        time.Duration(v.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			MaxIdleConns:   v.GetInt("API_MAX_IDLE_CONNS"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_MB") << 20,
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			Secure: v.GetBool("SESSION_SECURE"),
			MaxAge: v.GetInt("SESSION_MAX_AGE_HOURS") * 3600,
		},
		View: ViewConfig{
			TTL:       time.Duration(v.GetInt("VIEW_TTL_MINUTES")) * time.Minute,
			CacheSize: v.GetInt("VIEW_CACHE_SIZE"),
			MaxDrafts: v.GetInt("VIEW_MAX_DRAFTS"),
			Locale:    v.GetString("LIST_LOCALE"),
		},
	}

	return config, nil
}
