package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"student_attendance/db"
)

type Config struct {
	Environment string
	ServerPort  string
	JWTSecret   string
	SessionTTL  time.Duration
	CORSOrigins []string

	CollaboratorMode    string
	CollaboratorBin     string
	CollaboratorArgs    []string
	CollaboratorTimeout time.Duration

	Store             db.Config
	SeedAdminUser     string
	SeedAdminPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RollbarToken string
}

const (
	ModeProcess = "process"
	ModeInProc  = "inproc"

	devJWTSecret = "development-only-secret"
)

func defaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("CORS_ORIGINS", "")

	v.SetDefault("COLLABORATOR_MODE", ModeProcess)
	v.SetDefault("COLLABORATOR_BIN", "attendancedb")
	v.SetDefault("COLLABORATOR_ARGS", "")
	v.SetDefault("COLLABORATOR_TIMEOUT", 5*time.Second)

	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "attendance")
	v.SetDefault("DB_PATH", "data/attendance.db")
	v.SetDefault("SEED_ADMIN_USER", "admin")
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ROLLBAR_TOKEN", "")
}

func newViper() *viper.Viper {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) and the process environment for the web server.
func Load() (*Config, error) {
	return fromViper(newViper())
}

// LoadCollaborator reads the same sources for attendancedb, which only needs the
// store, seed and logging keys and so skips the server checks.
func LoadCollaborator() *Config {
	return readConfig(newViper())
}

func readConfig(v *viper.Viper) *Config {
	return &Config{
		Environment: v.GetString("ENVIRONMENT"),
		ServerPort:  v.GetString("PORT"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		SessionTTL:  v.GetDuration("SESSION_TTL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS"), ","),

		CollaboratorMode:    v.GetString("COLLABORATOR_MODE"),
		CollaboratorBin:     v.GetString("COLLABORATOR_BIN"),
		CollaboratorArgs:    strings.Fields(v.GetString("COLLABORATOR_ARGS")),
		CollaboratorTimeout: v.GetDuration("COLLABORATOR_TIMEOUT"),

		Store: db.Config{
			Driver:   v.GetString("STORE_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			Path:     v.GetString("DB_PATH"),
		},
		SeedAdminUser:     v.GetString("SEED_ADMIN_USER"),
		SeedAdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		RollbarToken: v.GetString("ROLLBAR_TOKEN"),
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := readConfig(v)
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET environment variable is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.CollaboratorMode != ModeProcess && cfg.CollaboratorMode != ModeInProc {
		return nil, errors.New("COLLABORATOR_MODE must be process or inproc")
	}
	if cfg.CollaboratorTimeout <= 0 {
		return nil, errors.New("COLLABORATOR_TIMEOUT must be positive")
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "test"
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
