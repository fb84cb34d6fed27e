package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Jobs      JobsConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	Timezone    string // zona para el día calendario de la numeración y los reportes
	SwaggerFile string // vacío = sin /docs
}

// Location resuelve Timezone; "Local" o vacío usan la zona del servidor.
func (c AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// StoreConfig elige la persistencia y el contador de secuencias.
type StoreConfig struct {
	Backend         string // postgres | memory
	SequenceBackend string // store | redis
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
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

// RedisConfig conexión opcional para el contador de secuencias.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JobsConfig tareas programadas (expresiones cron; vacío = deshabilitada).
type JobsConfig struct {
	LowStockCron string
}

// RateLimitConfig límite de intentos de login por IP.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// SeedConfig credenciales del admin inicial (cmd/seed_admin).
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "cafe-pos-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			Timezone:    getString(v, "APP_TIMEZONE", "Local"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Store: StoreConfig{
			Backend:         getString(v, "STORE_BACKEND", "postgres"),
			SequenceBackend: getString(v, "SEQUENCE_BACKEND", "store"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cafe_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:     getString(v, "JWT_ISSUER", "cafe-pos-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 4000),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Jobs: JobsConfig{
			LowStockCron: getString(v, "LOW_STOCK_CRON", "0 7 * * *"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getInt(v, "LOGIN_RATE_BURST", 5),
		},
		Seed: SeedConfig{
			AdminUsername: getString(v, "SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es requerido")
	}
	switch c.Store.Backend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_BACKEND inválido: %q", c.Store.Backend)
	}
	switch c.Store.SequenceBackend {
	case "store", "redis":
	default:
		return fmt.Errorf("SEQUENCE_BACKEND inválido: %q", c.Store.SequenceBackend)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
