package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix for every SHOPPI_* variable.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPPI_DB_DSN"
	EnvDBHost = "SHOPPI_DB_HOST"
	EnvDBUser = "SHOPPI_DB_USER"
	EnvDBName = "SHOPPI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Features FeatureFlagsConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	Sendgrid SendgridConfig
	Checkout CheckoutConfig
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
	Env          string `envconfig:"SHOPPI_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPPI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPPI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPPI_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SHOPPI_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPPI_DB_DSN"`
	Driver string `envconfig:"SHOPPI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPPI_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPPI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPPI_DB_USER"`
	LegacyPassword string `envconfig:"SHOPPI_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPPI_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPPI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPPI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPPI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPPI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPPI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPPI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPPI_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPPI_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPPI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPPI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPPI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPPI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPPI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPPI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPPI_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SHOPPI_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"SHOPPI_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"SHOPPI_PUBSUB_NOTIFICATION_TOPIC" default:"shoppi-notification-events"`
	NotificationSubscription string `envconfig:"SHOPPI_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"SHOPPI_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"SHOPPI_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"SHOPPI_SENDGRID_FROM_NAME" default:"Shoppi"`
}

type CheckoutConfig struct {
	TrackingAttempts int           `envconfig:"SHOPPI_CHECKOUT_TRACKING_ATTEMPTS" default:"5"`
	NotifyTimeout    time.Duration `envconfig:"SHOPPI_CHECKOUT_NOTIFY_TIMEOUT" default:"3s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
