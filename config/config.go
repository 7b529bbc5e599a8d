package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Commit   CommitConfig   `mapstructure:"commit"`
	API      APIConfig      `mapstructure:"api"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ChainConfig configures the Cardano anchoring adapter.
type ChainConfig struct {
	BlockfrostProjectID string        `mapstructure:"blockfrost_project_id"`
	BlockfrostServer    string        `mapstructure:"blockfrost_server"` // empty = preprod
	SignerURL           string        `mapstructure:"signer_url"`        // metadata signer sidecar base URL
	SignerAPIKey        string        `mapstructure:"signer_api_key"`
	WalletAddress       string        `mapstructure:"wallet_address"`
	MinUTXOLovelace     int64         `mapstructure:"min_utxo_lovelace"` // reserve an input must hold
	ConfirmMaxAttempts  int           `mapstructure:"confirm_max_attempts"`
	ConfirmInterval     time.Duration `mapstructure:"confirm_interval"`
}

// CommitConfig configures the periodic batch cycle.
type CommitConfig struct {
	Period      time.Duration `mapstructure:"period"`       // interval between scheduled cycles
	TxTimeout   time.Duration `mapstructure:"tx_timeout"`   // statement timeout for the batch transaction
	LockTTL     time.Duration `mapstructure:"lock_ttl"`     // redis run-lock TTL
	SystemActor string        `mapstructure:"system_actor"` // actor identity for elevated writes
}

// APIConfig configures the operator HTTP surface.
type APIConfig struct {
	Key string `mapstructure:"key"` // api key for mutating endpoints; empty disables the guard
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PTA_ (Point Transaction Anchor).
// Nested keys use underscore: PTA_DATABASE_HOST, PTA_CHAIN_SIGNER_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "point_anchor")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("chain.blockfrost_project_id", "")
	v.SetDefault("chain.blockfrost_server", "")
	v.SetDefault("chain.signer_url", "http://localhost:8090")
	v.SetDefault("chain.signer_api_key", "")
	v.SetDefault("chain.wallet_address", "")
	v.SetDefault("chain.min_utxo_lovelace", 5_000_000) // 5 ADA
	v.SetDefault("chain.confirm_max_attempts", 60)
	v.SetDefault("chain.confirm_interval", "5s")
	v.SetDefault("commit.period", "168h") // weekly
	v.SetDefault("commit.tx_timeout", "120s")
	v.SetDefault("commit.lock_ttl", "10m")
	v.SetDefault("commit.system_actor", "system")
	v.SetDefault("api.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PTA_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
