package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Server captures process configuration parsed from the environment.
type Server struct {
	Addr        string `env:"LANDTITLE_ADDR" envDefault:":8080"`
	Environment string `env:"LANDTITLE_ENV" envDefault:"development"`

	Log         LogConfig
	Auth        AuthConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Ledger      LedgerConfig
	Certificate CertificateConfig
	Worker      WorkerConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type AuthConfig struct {
	JWTSigningKey  string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"landtitle"`
	JWTAudience    string        `env:"JWT_AUDIENCE" envDefault:"landtitle-api"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// InspectorInviteCode gates self-registration as an inspector. Empty
	// disables inspector sign-up.
	InspectorInviteCode string `env:"INSPECTOR_INVITE_CODE"`
	BcryptCost          int    `env:"BCRYPT_COST" envDefault:"12"`
}

// DatabaseConfig selects Postgres when URL is set, in-memory stores otherwise.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	TxTimeout       time.Duration `env:"DATABASE_TX_TIMEOUT" envDefault:"5s"`
}

// RedisConfig selects Redis-backed sessions when URL is set.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig enables the outbox relay when Brokers is non-empty.
type KafkaConfig struct {
	Brokers       []string      `env:"KAFKA_BROKERS" envSeparator:","`
	Topic         string        `env:"KAFKA_AUDIT_TOPIC" envDefault:"landtitle.audit"`
	RelayInterval time.Duration `env:"OUTBOX_RELAY_INTERVAL" envDefault:"1s"`
}

// LedgerConfig points at an Ethereum JSON-RPC node. Without RPCURL the
// service trusts submitted transaction ids, which is only suitable for development.
type LedgerConfig struct {
	RPCURL           string        `env:"LEDGER_RPC_URL"`
	ChainID          int64         `env:"LEDGER_CHAIN_ID" envDefault:"11155111"`
	CustodianAddress string        `env:"ESCROW_CUSTODIAN_ADDRESS" envDefault:"0x37622b2e2714ee440a7672e7d83802196530b2bc"`
	INRPerEther      string        `env:"INR_PER_ETHER" envDefault:"250000"`
	Timeout          time.Duration `env:"LEDGER_TIMEOUT" envDefault:"10s"`
	MinConfirmations uint64        `env:"LEDGER_MIN_CONFIRMATIONS" envDefault:"1"`
}

type CertificateConfig struct {
	// EmbedStyle is "metadata" (canonical) or "hidden-text".
	EmbedStyle string `env:"CERTIFICATE_EMBED_STYLE" envDefault:"metadata"`
	Issuer     string `env:"CERTIFICATE_ISSUER" envDefault:"Land Registry Office"`
}

type WorkerConfig struct {
	ConfirmationInterval time.Duration `env:"CONFIRMATION_INTERVAL" envDefault:"30s"`
	ConfirmationParallel int           `env:"CONFIRMATION_PARALLELISM" envDefault:"4"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Certificate.EmbedStyle != "metadata" && cfg.Certificate.EmbedStyle != "hidden-text" {
		return Server{}, fmt.Errorf("invalid CERTIFICATE_EMBED_STYLE %q", cfg.Certificate.EmbedStyle)
	}
	return cfg, nil
}

func (s Server) IsProduction() bool {
	return s.Environment == "production"
}
