// Package config defines environment configuration structs and loaders.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig is the full node configuration, parsed once at startup and
// passed by value to the components that need it.
type AppConfig struct {
	ChainEnvConfig
	WalletEnvConfig
	GatewayEnvConfig
	ServerEnvConfig
	ClientEnvConfig
	RedisEnvConfig
	GeneratorEnvConfig
	ValidatorEnvConfig
}

// LoadConfig parses the process environment into an AppConfig and applies
// any command-line overrides that were set. A missing or empty required
// variable produces an error naming that variable.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	return cfg, nil
}

// ChainEnvConfig holds the fixed network-identifying parameters.
type ChainEnvConfig struct {
	Netuid           int    `env:"NETUID" envDefault:"81"`
	SubtensorNetwork string `env:"SUBTENSOR_NETWORK" envDefault:"finney"`
}

// WalletEnvConfig holds wallet key configuration. Both names are required:
// startup must not proceed without them.
type WalletEnvConfig struct {
	WalletColdkey string `env:"WALLET_COLDKEY,required,notEmpty"`
	WalletHotkey  string `env:"WALLET_HOTKEY,required,notEmpty"`
	BittensorDir  string `env:"BITTENSOR_DIR" envDefault:"~/.bittensor"`
}

// GatewayEnvConfig locates the subtensor gateway sidecar.
type GatewayEnvConfig struct {
	GatewayHost string `env:"SUBTENSOR_GATEWAY_HOST" envDefault:"127.0.0.1"`
	GatewayPort string `env:"SUBTENSOR_GATEWAY_PORT" envDefault:"3000"`
}

// ServerEnvConfig configures the miner's axon server. Address may name an
// explicit advertise address; when empty the external IP is discovered at
// startup. ExternalPort 0 means "same as Port".
type ServerEnvConfig struct {
	Address       string `env:"AXON_IP"`
	Port          int    `env:"AXON_PORT" envDefault:"8091"`
	ExternalPort  int    `env:"EXTERNAL_PORT" envDefault:"0"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"4194304"`
}

// ClientEnvConfig configures outbound HTTP clients.
type ClientEnvConfig struct {
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT" envDefault:"30s"`
}

// RedisEnvConfig configures the Redis connection used by the validator.
type RedisEnvConfig struct {
	RedisHost     string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// GeneratorEnvConfig locates the story generator backend configuration.
type GeneratorEnvConfig struct {
	GeneratorConfigPath string `env:"GENERATOR_CONFIG" envDefault:"config/generator.yaml"`
}

// ValidatorEnvConfig configures the validator runtime. The validator
// listens on its own port, distinct from the miner's axon port.
type ValidatorEnvConfig struct {
	ValidatorPort int    `env:"VALIDATOR_PORT" envDefault:"8092"`
	Environment   string `env:"ENVIRONMENT" envDefault:"prod"`
	ScoresFile    string `env:"SCORES_FILE" envDefault:"scores.json"`
}
