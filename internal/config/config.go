package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string
}

type DBConfig struct {
	DSN string
}

type AdminConfig struct {
	APIKey string
}

type LogConfig struct {
	Level      string
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Config is loaded once at startup and handed to component
// constructors. Business logic never reads viper directly.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Admin  AdminConfig
	Log    LogConfig
}

// Load reads config.yaml from the working directory. Every key can be
// overridden through the environment (QRLINK_DB_DSN, QRLINK_ADMIN_API_KEY, ...).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("QRLINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine when the environment supplies everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		DB: DBConfig{
			DSN: viper.GetString("db.dsn"),
		},
		Admin: AdminConfig{
			APIKey: viper.GetString("admin.api_key"),
		},
		Log: LogConfig{
			Level:      viper.GetString("log.level"),
			Path:       viper.GetString("log.path"),
			MaxSize:    viper.GetInt("log.max_size"),
			MaxBackups: viper.GetInt("log.max_backups"),
			MaxAge:     viper.GetInt("log.max_age"),
			Compress:   viper.GetBool("log.compress"),
		},
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	return cfg, nil
}
