package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "ROI"

// Config holds application configuration sourced from config.yaml and environment variables.
type Config struct {
	Env    string       `yaml:"env" mapstructure:"env"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Admin  AdminConfig  `yaml:"admin" mapstructure:"admin"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port          int      `yaml:"port" mapstructure:"port"`
	SessionSecret string   `yaml:"session_secret" mapstructure:"session_secret"`
	CORSOrigins   []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// StoreConfig configures the SQLite database.
type StoreConfig struct {
	DBPath        string `yaml:"db_path" mapstructure:"db_path"`
	AutoMigrate   bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
	SeedOnStartup bool   `yaml:"seed_on_startup" mapstructure:"seed_on_startup"`
}

// AdminConfig holds the credentials of the bootstrap admin user.
type AdminConfig struct {
	Email    string `yaml:"email" mapstructure:"email"`
	Password string `yaml:"password" mapstructure:"password"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// IsDev reports whether the app runs in local development mode.
func (c *Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == "development"
}

// Load reads config.yaml (optional) and ROI_* environment variables.
// A local .env file is loaded first; variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file loaded", zap.Error(err))
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "dev")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_secret", "")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("store.db_path", "./dev.db")
	v.SetDefault("store.auto_migrate", true)
	v.SetDefault("store.seed_on_startup", true)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Warnings lists settings that are empty but needed for the saved-scenario features.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Admin.Email == "" {
		warnings = append(warnings, "ROI_ADMIN_EMAIL is not set")
	}
	if c.Admin.Password == "" {
		warnings = append(warnings, "ROI_ADMIN_PASSWORD is not set")
	}
	if c.Server.SessionSecret == "" {
		warnings = append(warnings, "ROI_SERVER_SESSION_SECRET is not set")
	}
	return warnings
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
