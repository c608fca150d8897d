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
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Records RecordsConfig
	Console ConsoleConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string // vacío o inexistente = sin /docs
	CatalogFile string // vacío = catálogos embebidos
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

// RedisConfig conexión a Redis (solo si STORAGE_DRIVER=redis).
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento de sesión soportados.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StorageConfig almacenamiento clave-valor de las sesiones de consola (historial, flags de sesión).
type StorageConfig struct {
	Driver  string        // memory, file, redis, postgres
	DataDir string        // driver file
	TTL     time.Duration // driver redis; 0 = sin expiración
}

// RecordsConfig origen de manifiestos y remesas.
type RecordsConfig struct {
	Driver string // memory (datos de ejemplo) o postgres
}

// ConsoleConfig credenciales simuladas y retardos del flujo de acceso.
type ConsoleConfig struct {
	Username          string
	Password          string // en claro; se ignora si PasswordHash está definido
	PasswordHash      string // bcrypt
	RecoveryEmail     string
	LoginLatency      time.Duration
	TwoFactorLatency  time.Duration
	CostCenterLatency time.Duration
	RecoveryLatency   time.Duration
	ResendCooldown    time.Duration
	CostCenters       []CostCenterOption
}

// CostCenterOption centro de costos seleccionable (CONSOLE_COST_CENTERS="001=Nombre,002=Otro").
type CostCenterOption struct {
	Code string
	Name string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "silogtran-console"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
			CatalogFile: getString(v, "CATALOG_FILE", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "silogtran"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "silogtran-console"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:  strings.ToLower(getString(v, "STORAGE_DRIVER", DriverMemory)),
			DataDir: getString(v, "STORAGE_DATA_DIR", "./data/sessions"),
			TTL:     time.Duration(getInt(v, "STORAGE_TTL_HOURS", 24*7)) * time.Hour,
		},
		Records: RecordsConfig{
			Driver: strings.ToLower(getString(v, "RECORDS_DRIVER", DriverMemory)),
		},
		Console: ConsoleConfig{
			Username:          getString(v, "CONSOLE_USERNAME", "admin"),
			Password:          getString(v, "CONSOLE_PASSWORD", "admin"),
			PasswordHash:      getString(v, "CONSOLE_PASSWORD_HASH", ""),
			RecoveryEmail:     getString(v, "CONSOLE_RECOVERY_EMAIL", "admin@empresa.com"),
			LoginLatency:      time.Duration(getInt(v, "CONSOLE_LOGIN_LATENCY_MS", 1500)) * time.Millisecond,
			TwoFactorLatency:  time.Duration(getInt(v, "CONSOLE_TWO_FACTOR_LATENCY_MS", 2000)) * time.Millisecond,
			CostCenterLatency: time.Duration(getInt(v, "CONSOLE_COST_CENTER_LATENCY_MS", 1000)) * time.Millisecond,
			RecoveryLatency:   time.Duration(getInt(v, "CONSOLE_RECOVERY_LATENCY_MS", 2000)) * time.Millisecond,
			ResendCooldown:    time.Duration(getInt(v, "CONSOLE_RESEND_COOLDOWN_SECONDS", 60)) * time.Second,
			CostCenters: parseCostCenters(getList(v, "CONSOLE_COST_CENTERS", []string{
				"001=Centro Principal - Bogotá",
				"002=Centro Norte - Medellín",
				"003=Centro Sur - Cali",
				"004=Centro Costa - Barranquilla",
			})),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER %q no soportado", c.Storage.Driver)
	}
	switch c.Records.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("config: RECORDS_DRIVER %q no soportado", c.Records.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return nil
}

// NeedsPostgres informa si algún driver requiere el pool de PostgreSQL.
func (c *Config) NeedsPostgres() bool {
	return c.Storage.Driver == DriverPostgres || c.Records.Driver == DriverPostgres
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

// getList lee una lista separada por comas.
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// parseCostCenters interpreta entradas "código=nombre"; sin "=" el nombre hace de código.
func parseCostCenters(entries []string) []CostCenterOption {
	out := make([]CostCenterOption, 0, len(entries))
	for _, e := range entries {
		code, name, ok := strings.Cut(e, "=")
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if !ok || name == "" {
			name = code
		}
		if code == "" {
			continue
		}
		out = append(out, CostCenterOption{Code: code, Name: name})
	}
	return out
}
