package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Supabase SupabaseConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	WhatsApp WhatsAppConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Supabase.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.UsesDatabase() {
		if err := cfg.DB.ensureDSN(cfg.Storage.Driver); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIDLEADS_APP_ENV" default:"development"`
	Port         string `envconfig:"PIDLEADS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PIDLEADS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIDLEADS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SupabaseConfig points the backend client at the hosted project. URL and
// anon key are the two values the app cannot run without.
type SupabaseConfig struct {
	URL           string        `envconfig:"PIDLEADS_SUPABASE_URL" required:"true"`
	AnonKey       string        `envconfig:"PIDLEADS_SUPABASE_ANON_KEY" required:"true"`
	Timeout       time.Duration `envconfig:"PIDLEADS_SUPABASE_TIMEOUT" default:"10s"`
	ContactsTable string        `envconfig:"PIDLEADS_SUPABASE_CONTACTS_TABLE" default:"contacts"`
}

func (s SupabaseConfig) validate() error {
	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", EnvSupabaseURL)
	}
	if strings.TrimSpace(s.AnonKey) == "" {
		return fmt.Errorf("%s is required", EnvSupabaseAnonKey)
	}
	return nil
}

// StorageConfig selects where contact records live. The default talks to
// Supabase over REST; postgres/sqlite run against a directly owned table.
type StorageConfig struct {
	Driver string `envconfig:"PIDLEADS_STORAGE_DRIVER" default:"supabase"`
}

func (s StorageConfig) UsesDatabase() bool {
	return s.Driver == StorageDriverPostgres || s.Driver == StorageDriverSQLite
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverSupabase, StorageDriverPostgres, StorageDriverSQLite:
		return nil
	default:
		return fmt.Errorf("%s must be one of supabase, postgres, sqlite", EnvStorageDriver)
	}
}

type DBConfig struct {
	DSN string `envconfig:"PIDLEADS_DB_DSN"`

	Host     string `envconfig:"PIDLEADS_DB_HOST"`
	Port     int    `envconfig:"PIDLEADS_DB_PORT" default:"5432"`
	User     string `envconfig:"PIDLEADS_DB_USER"`
	Password string `envconfig:"PIDLEADS_DB_PASSWORD"`
	Name     string `envconfig:"PIDLEADS_DB_NAME"`
	SSLMode  string `envconfig:"PIDLEADS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIDLEADS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PIDLEADS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PIDLEADS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIDLEADS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PIDLEADS_REDIS_URL"`
	Address      string        `envconfig:"PIDLEADS_REDIS_ADDR"`
	Password     string        `envconfig:"PIDLEADS_REDIS_PASSWORD"`
	DB           int           `envconfig:"PIDLEADS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PIDLEADS_REDIS_POOL_SIZE" default:"5"`
	MinIdleConns int           `envconfig:"PIDLEADS_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"PIDLEADS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PIDLEADS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PIDLEADS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether the listing cache should be wired at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	CookieName   string `envconfig:"PIDLEADS_SESSION_COOKIE_NAME" default:"pid_session"`
	CookieSecure bool   `envconfig:"PIDLEADS_SESSION_COOKIE_SECURE" default:"false"`
}

type WhatsAppConfig struct {
	GroupLink string `envconfig:"PIDLEADS_WHATSAPP_GROUP_LINK" default:"https://chat.whatsapp.com/SEUCODIGODEGRUPO"`
}

func (db *DBConfig) ensureDSN(driver string) error {
	if db.DSN != "" {
		return nil
	}
	if driver == StorageDriverSQLite {
		db.DSN = "pidleads.db"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
