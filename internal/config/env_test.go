package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	t.Setenv("WALLET_FILE_PATH", "wallet.spw")
	t.Setenv("CONTRACT_ADDRESS", "CD4L4MPVSJ3RLAUYQ3ID2M75VWVVMDFBTESJIY4UULFFN33X2KNRTJXY")

	require.NoError(t, Init())

	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, "wallet.spw", GetWalletFilePath())
	assert.Equal(t, "https://soroban-testnet.stellar.org", GetRPCURL())
	assert.Equal(t, "Test SDF Network ; September 2015", GetNetworkPassphrase())
	assert.Equal(t, 180, GetTxTimeoutSeconds())
	assert.Equal(t, 100, GetPollIntervalMs())
	assert.Equal(t, int64(10000000), GetMinorUnitScale())
}

func TestInitOverrides(t *testing.T) {
	t.Setenv("WALLET_FILE_PATH", "custom.spw")
	t.Setenv("CONTRACT_ADDRESS", "CD4L4MPVSJ3RLAUYQ3ID2M75VWVVMDFBTESJIY4UULFFN33X2KNRTJXY")
	t.Setenv("PORT", "9090")
	t.Setenv("TX_TIMEOUT_SECONDS", "60")

	require.NoError(t, Init())

	assert.Equal(t, "9090", GetPort())
	assert.Equal(t, 60, GetTxTimeoutSeconds())
}

func TestInitMissingRequired(t *testing.T) {
	// t.Setenv records the originals for restore; the vars must then be
	// truly absent, not just empty, for required to trip.
	t.Setenv("WALLET_FILE_PATH", "x")
	t.Setenv("CONTRACT_ADDRESS", "x")
	os.Unsetenv("WALLET_FILE_PATH")
	os.Unsetenv("CONTRACT_ADDRESS")

	assert.Error(t, Init())
}

func TestInitInvalidScale(t *testing.T) {
	t.Setenv("WALLET_FILE_PATH", "wallet.spw")
	t.Setenv("CONTRACT_ADDRESS", "CD4L4MPVSJ3RLAUYQ3ID2M75VWVVMDFBTESJIY4UULFFN33X2KNRTJXY")
	t.Setenv("MINOR_UNIT_SCALE", "-1")

	assert.Error(t, Init())
}
