package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	WalletFilePath string `envconfig:"WALLET_FILE_PATH" required:"true"`

	// Network endpoints - TESTNET defaults
	RPCURL       string `envconfig:"RPC_URL" default:"https://soroban-testnet.stellar.org"`
	HorizonURL   string `envconfig:"HORIZON_URL" default:"https://horizon-testnet.stellar.org"`
	FriendbotURL string `envconfig:"FRIENDBOT_URL" default:"https://friendbot.stellar.org"`

	NetworkPassphrase string `envconfig:"NETWORK_PASSPHRASE" default:"Test SDF Network ; September 2015"`

	// Crowdfunding contract and the native XLM asset contract (SAC)
	ContractAddress     string `envconfig:"CONTRACT_ADDRESS" required:"true"`
	NativeAssetContract string `envconfig:"NATIVE_ASSET_CONTRACT" default:"CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"`

	// Transaction lifecycle tuning
	TxTimeoutSeconds int   `envconfig:"TX_TIMEOUT_SECONDS" default:"180"`
	PollIntervalMs   int   `envconfig:"POLL_INTERVAL_MS" default:"100"`
	MinorUnitScale   int64 `envconfig:"MINOR_UNIT_SCALE" default:"10000000"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.MinorUnitScale <= 0 {
		return fmt.Errorf("MINOR_UNIT_SCALE must be positive, got %d", cfg.MinorUnitScale)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to the .spw wallet file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetRPCURL returns the Soroban RPC URL from configuration
func GetRPCURL() string {
	return Get().RPCURL
}

// GetHorizonURL returns the Horizon URL from configuration
func GetHorizonURL() string {
	return Get().HorizonURL
}

// GetFriendbotURL returns the friendbot URL from configuration
func GetFriendbotURL() string {
	return Get().FriendbotURL
}

// GetNetworkPassphrase returns the network passphrase from configuration
func GetNetworkPassphrase() string {
	return Get().NetworkPassphrase
}

// GetContractAddress returns the crowdfunding contract address from configuration
func GetContractAddress() string {
	return Get().ContractAddress
}

// GetNativeAssetContract returns the native asset contract address from configuration
func GetNativeAssetContract() string {
	return Get().NativeAssetContract
}

// GetTxTimeoutSeconds returns the transaction validity window in seconds
func GetTxTimeoutSeconds() int {
	return Get().TxTimeoutSeconds
}

// GetPollIntervalMs returns the transaction poll interval in milliseconds
func GetPollIntervalMs() int {
	return Get().PollIntervalMs
}

// GetMinorUnitScale returns the minor units per whole token (10^7 for stroops)
func GetMinorUnitScale() int64 {
	return Get().MinorUnitScale
}
