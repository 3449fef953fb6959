package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	key, value, _ = strings.Cut(entry, "=")
	return key, value
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetList splits a comma separated value, dropping blanks
func GetList(config map[string]string, key string, defaultValue []string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func seconds(config map[string]string, key string, defaultValue int) time.Duration {
	return time.Duration(GetInt(config, key, defaultValue)) * time.Second
}

const (
	DBMemory   = "memory"
	DBPostgres = "postgres"
	DBSQLite   = "sqlite"
)

// Config is the typed view of the environment the server runs with
type Config struct {
	Port             int
	AppEnv           string
	LogLevel         string
	DBType           string
	DatabaseURL      string
	SQLitePath       string
	RedisURL         string
	CacheTTL         time.Duration
	TrendingSchedule string
	AdminToken       string
	AcceptedOrigins  []string
	SeedSampleData   bool
	ColumnReport     bool
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// Load reads Config from an env map built by New
func Load(env map[string]string) Config {
	dbType := strings.ToLower(GetString(env, "DB_TYPE", DBMemory))
	if dbType == "" {
		dbType = DBMemory
	}

	return Config{
		Port:             GetInt(env, "PORT", 8080),
		AppEnv:           GetString(env, "APP_ENV", "development"),
		LogLevel:         GetString(env, "LOG_LEVEL", "info"),
		DBType:           dbType,
		DatabaseURL:      GetString(env, "DATABASE_URL", ""),
		SQLitePath:       GetString(env, "SQLITE_PATH", "chainblog.db"),
		RedisURL:         GetString(env, "REDIS_URL", ""),
		CacheTTL:         seconds(env, "CACHE_TTL_SECONDS", 30),
		TrendingSchedule: GetString(env, "TRENDING_SCHEDULE", "@every 15m"),
		AdminToken:       GetString(env, "ADMIN_TOKEN", ""),
		AcceptedOrigins:  GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),
		SeedSampleData:   GetBool(env, "SEED_SAMPLE_DATA", true),
		ColumnReport:     GetBool(env, "GENERATE_COLUMN_REPORT", false),
		ReadTimeout:      seconds(env, "READ_TIMEOUT_SECONDS", 15),
		WriteTimeout:     seconds(env, "WRITE_TIMEOUT_SECONDS", 15),
		IdleTimeout:      seconds(env, "IDLE_TIMEOUT_SECONDS", 60),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
