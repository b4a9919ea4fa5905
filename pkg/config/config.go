package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Cart         CartConfig
	ERP          ERPConfig
	CloudSync    CloudSyncConfig
	Advice       AdviceConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOTICAVIVA_APP_ENV" required:"true"`
	Port         string `envconfig:"BOTICAVIVA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOTICAVIVA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOTICAVIVA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOTICAVIVA_DB_DSN"`
	Driver string `envconfig:"BOTICAVIVA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BOTICAVIVA_DB_HOST"`
	Port     int    `envconfig:"BOTICAVIVA_DB_PORT" default:"5432"`
	User     string `envconfig:"BOTICAVIVA_DB_USER"`
	Password string `envconfig:"BOTICAVIVA_DB_PASSWORD"`
	Name     string `envconfig:"BOTICAVIVA_DB_NAME"`
	SSLMode  string `envconfig:"BOTICAVIVA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOTICAVIVA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOTICAVIVA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOTICAVIVA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOTICAVIVA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOTICAVIVA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOTICAVIVA_REDIS_ADDR"`
	Password     string        `envconfig:"BOTICAVIVA_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOTICAVIVA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOTICAVIVA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOTICAVIVA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOTICAVIVA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOTICAVIVA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOTICAVIVA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig carries the single back-office credential and JWT settings.
// The admin gate is deliberately a fixed-credential stub, not a user system.
type AdminConfig struct {
	Email             string `envconfig:"BOTICAVIVA_ADMIN_EMAIL" required:"true"`
	PasswordHash      string `envconfig:"BOTICAVIVA_ADMIN_PASSWORD_HASH" required:"true"`
	JWTSecret         string `envconfig:"BOTICAVIVA_ADMIN_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"BOTICAVIVA_ADMIN_JWT_ISSUER" default:"boticaviva"`
	ExpirationMinutes int    `envconfig:"BOTICAVIVA_ADMIN_JWT_EXPIRATION_MINUTES" default:"480"`
}

// TokenTTL returns the admin token lifetime.
func (a AdminConfig) TokenTTL() time.Duration {
	if a.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(a.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BOTICAVIVA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BOTICAVIVA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BOTICAVIVA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BOTICAVIVA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BOTICAVIVA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BOTICAVIVA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BOTICAVIVA_AUTO_MIGRATE" default:"false"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"BOTICAVIVA_CART_TTL" default:"72h"`
}

// ERPConfig holds defaults for the external catalog connection. The actual
// session (url, db, key, uid) is persisted by the admin connect flow.
type ERPConfig struct {
	RequestTimeout time.Duration `envconfig:"BOTICAVIVA_ERP_REQUEST_TIMEOUT" default:"15s"`
	CompanyID      int64         `envconfig:"BOTICAVIVA_ERP_COMPANY_ID" default:"1"`
}

type CloudSyncConfig struct {
	BaseURL string `envconfig:"BOTICAVIVA_CLOUDSYNC_BASE_URL"`
	APIKey  string `envconfig:"BOTICAVIVA_CLOUDSYNC_API_KEY"`
	StoreID string `envconfig:"BOTICAVIVA_CLOUDSYNC_STORE_ID" default:"boticaviva"`
}

type AdviceConfig struct {
	APIKey  string `envconfig:"BOTICAVIVA_ADVICE_API_KEY"`
	BaseURL string `envconfig:"BOTICAVIVA_ADVICE_BASE_URL" default:"https://api.openai.com/v1"`
	Model   string `envconfig:"BOTICAVIVA_ADVICE_MODEL" default:"gpt-4o-mini"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BOTICAVIVA_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"BOTICAVIVA_PUBSUB_ORDERS_TOPIC" default:"bv-order-events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = "file:boticaviva.db?cache=shared"
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
