package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Prices        PricesConfig
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
	Env          string `envconfig:"VIANDAS_APP_ENV" required:"true"`
	Port         string `envconfig:"VIANDAS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VIANDAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VIANDAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VIANDAS_DB_DSN"`
	Driver string `envconfig:"VIANDAS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VIANDAS_DB_HOST"`
	LegacyPort     int    `envconfig:"VIANDAS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VIANDAS_DB_USER"`
	LegacyPassword string `envconfig:"VIANDAS_DB_PASSWORD"`
	LegacyName     string `envconfig:"VIANDAS_DB_NAME"`
	LegacySSLMode  string `envconfig:"VIANDAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VIANDAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VIANDAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VIANDAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VIANDAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VIANDAS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VIANDAS_REDIS_ADDR"`
	Password     string        `envconfig:"VIANDAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"VIANDAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VIANDAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VIANDAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VIANDAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VIANDAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VIANDAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VIANDAS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VIANDAS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VIANDAS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VIANDAS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VIANDAS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VIANDAS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VIANDAS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VIANDAS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VIANDAS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"VIANDAS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"VIANDAS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"VIANDAS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VIANDAS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VIANDAS_AUTO_MIGRATE" default:"false"`
}

// PricesConfig holds the fixed price table in whole pesos. The defaults match
// the current menu; overrides let the table change without a deploy.
type PricesConfig struct {
	Single   int `envconfig:"VIANDAS_PRICE_SINGLE" default:"9800"`
	Pack5    int `envconfig:"VIANDAS_PRICE_PACK5" default:"49000"`
	Pack10   int `envconfig:"VIANDAS_PRICE_PACK10" default:"92000"`
	Delivery int `envconfig:"VIANDAS_PRICE_DELIVERY" default:"3300"`
}

// PriceTable is the resolved monetary price table consumed by order pricing.
type PriceTable struct {
	Single   decimal.Decimal
	Pack5    decimal.Decimal
	Pack10   decimal.Decimal
	Delivery decimal.Decimal
}

// Table converts the configured integer prices into decimals.
func (p PricesConfig) Table() PriceTable {
	return PriceTable{
		Single:   decimal.NewFromInt(int64(p.Single)),
		Pack5:    decimal.NewFromInt(int64(p.Pack5)),
		Pack10:   decimal.NewFromInt(int64(p.Pack10)),
		Delivery: decimal.NewFromInt(int64(p.Delivery)),
	}
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
