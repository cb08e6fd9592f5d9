package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAppName            = "storefront"
	defaultAppEnv             = "local"
	defaultPort               = "3000"
	defaultSQLiteDSN          = "storefront.db"
	defaultRequestTimeout     = 5 * time.Second
	defaultSchemaRecheckDelay = 5 * time.Second
	defaultRateLimit          = 200
	defaultMaxOpenConns       = 25
	defaultMaxIdleConns       = 10
	defaultMaxBodyBytes       = 4 << 20
)

// Files read by Load, relative to the working directory.
var (
	JSONPath   = "config/app.json"
	DotEnvPath = ".env"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges defaults, config/app.json, .env and the process environment,
// in increasing order of precedence. Only the first call does any work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles(JSONPath, DotEnvPath)
	})
	return loadErr
}

// Set overrides a single key. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	defer mu.Unlock()
	values[strings.ToUpper(key)] = value
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_NAME":             defaultAppName,
		"APP_ENV":              defaultAppEnv,
		"PORT":                 defaultPort,
		"DATABASE_URL":         "",
		"DB_DRIVER":            "",
		"REDIS_ADDR":           "",
		"REDIS_PASSWORD":       "",
		"CORS_ORIGINS":         "*",
		"STATIC_DIR":           "",
		"LOG_MONGO_URI":        "",
		"LOG_MONGO_DB":         "storefront",
		"LOG_MONGO_COLLECTION": "logs",
	}
}

func AppName() string { _ = Load(); return get("APP_NAME", defaultAppName) }
func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func Port() string {
	_ = Load()
	return get("PORT", get("APP_PORT", defaultPort))
}

// DatabaseDSN returns DATABASE_URL, falling back to DATABASE_DSN and then to
// a local SQLite file.
func DatabaseDSN() string {
	_ = Load()
	if dsn := get("DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	return get("DATABASE_DSN", defaultSQLiteDSN)
}

// DatabaseDriver returns DB_DRIVER when it names a supported driver.
// Without one, a postgres:// URL selects postgres and anything else sqlite.
func DatabaseDriver() string {
	_ = Load()

	switch driver := strings.ToLower(get("DB_DRIVER", "")); driver {
	case "sqlite", "postgres", "mysql", "sqlserver":
		return driver
	}

	dsn := DatabaseDSN()
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func DBMaxOpenConns() int { _ = Load(); return getInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns) }
func DBMaxIdleConns() int { _ = Load(); return getInt("DB_MAX_IDLE_CONNS", defaultMaxIdleConns) }

func RequestTimeout() time.Duration {
	_ = Load()
	return getDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
}

// SchemaRecheckDelay is how long after startup the schema is reconciled a
// second time. Zero disables the recheck.
func SchemaRecheckDelay() time.Duration {
	_ = Load()
	return getDuration("SCHEMA_RECHECK_DELAY", defaultSchemaRecheckDelay)
}

// SchemaStrictStartup makes the server finish schema setup before it
// starts listening.
func SchemaStrictStartup() bool { _ = Load(); return getBool("SCHEMA_STRICT_STARTUP", false) }

func RateLimitPerMinute() int { _ = Load(); return getInt("RATE_LIMIT_PER_MINUTE", defaultRateLimit) }

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", "") }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// CORSOrigins returns the comma-separated CORS_ORIGINS list.
func CORSOrigins() []string {
	_ = Load()
	var out []string
	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func StaticDir() string { _ = Load(); return get("STATIC_DIR", "") }

func MaxBodyBytes() int64 {
	_ = Load()
	return int64(getInt("MAX_BODY_BYTES", defaultMaxBodyBytes))
}

// ── Log sink ─────────────────────────────────────────────────────────────────

func LogMongoURI() string        { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDB() string         { _ = Load(); return get("LOG_MONGO_DB", "storefront") }
func LogMongoCollection() string { _ = Load(); return get("LOG_MONGO_COLLECTION", "logs") }

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeEnviron(os.Environ(), loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64, bool:
			s = fmt.Sprint(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := splitPair(line)
		if !ok {
			continue
		}
		out[key] = strings.Trim(value, `"'`)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron copies every non-empty process environment entry.
func mergeEnviron(environ []string, out map[string]string) {
	for _, kv := range environ {
		key, value, ok := splitPair(kv)
		if !ok || value == "" {
			continue
		}
		out[key] = value
	}
}

func splitPair(line string) (string, string, bool) {
	idx := strings.IndexByte(line, '=')
	if idx <= 0 {
		return "", "", false
	}
	key := strings.ToUpper(strings.TrimSpace(line[:idx]))
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	// Bare integers are seconds.
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(strings.ToUpper(key), fallback)
}
