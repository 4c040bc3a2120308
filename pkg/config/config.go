package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	API        APIConfig
	Poller     PollerConfig
	HTTP       HTTPConfig
	TokenStore TokenStoreConfig
	Redis      RedisConfig
	DB         DBConfig
	Display    DisplayConfig
	Sandbox    SandboxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del API remoto de inventario.
// No se define timeout propio: aplica el del transporte HTTP.
type APIConfig struct {
	BaseURL string
}

// PollerConfig configuración del contador de notificaciones no leídas.
type PollerConfig struct {
	IntervalSeconds int
}

// Interval devuelve el intervalo de sondeo como time.Duration.
func (c PollerConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// HTTPConfig configuración del servidor HTTP local de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Backends de almacenamiento del token.
const (
	TokenStoreFile     = "file"
	TokenStoreRedis    = "redis"
	TokenStorePostgres = "postgres"
	TokenStoreMemory   = "memory"
)

// TokenStoreConfig dónde se guarda la única clave durable con el bearer token.
type TokenStoreConfig struct {
	Backend string // file, redis, postgres, memory
	File    string // ruta del archivo para backend "file"
	Key     string // clave en Redis / fila en Postgres
}

// RedisConfig conexión a Redis (backend "redis").
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr devuelve host:port de Redis.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL (backend "postgres").
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// DisplayConfig formato de montos en pantalla y exportaciones.
type DisplayConfig struct {
	Locale   string // etiqueta BCP 47, ej. pt-BR
	Currency string // código ISO 4217, ej. BRL
}

// SandboxConfig configuración del API remoto simulado (solo cmd/sandbox).
type SandboxConfig struct {
	Port          int
	JWTSecret     string
	JWTExpiration int // minutos
	JWTIssuer     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, TOKEN_STORE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:3000/api"), "/"),
		},
		Poller: PollerConfig{
			IntervalSeconds: getInt(v, "POLL_INTERVAL_SECONDS", 30),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		TokenStore: TokenStoreConfig{
			Backend: strings.ToLower(getString(v, "TOKEN_STORE", TokenStoreFile)),
			File:    getString(v, "TOKEN_FILE", ".inventario-session"),
			Key:     getString(v, "TOKEN_KEY", "inventario:token"),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", "localhost"),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_console"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Display: DisplayConfig{
			Locale:   getString(v, "DISPLAY_LOCALE", "pt-BR"),
			Currency: getString(v, "DISPLAY_CURRENCY", "BRL"),
		},
		Sandbox: SandboxConfig{
			Port:          getInt(v, "SANDBOX_HTTP_PORT", 3000),
			JWTSecret:     getString(v, "JWT_SECRET", "sandbox-secret"),
			JWTExpiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			JWTIssuer:     getString(v, "JWT_ISSUER", "inventario-sandbox"),
		},
	}

	switch cfg.TokenStore.Backend {
	case TokenStoreFile, TokenStoreRedis, TokenStorePostgres, TokenStoreMemory:
	default:
		return nil, fmt.Errorf("config: TOKEN_STORE desconocido %q", cfg.TokenStore.Backend)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
