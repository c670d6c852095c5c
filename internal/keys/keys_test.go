package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	require.NoError(t, err)
	require.NotNil(t, kp)

	assert.True(t, IsValidPublicKey(kp.Address()))
	assert.Equal(t, byte('S'), kp.Seed()[0])
}

func TestFromSecretRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	require.NoError(t, err)

	recovered, err := FromSecret(kp.Seed())
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), recovered.Address())
}

func TestFromSecretInvalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"not a seed",
		"GDMT3KZ3Q4S5YKPBCI7BGJB5H3ST7GF2IFRJVU34WEIE5UX5NZTW5FTF", // public identifier, not a seed
		"SCZANGBA5YHTNYVVV4C3U252E2B6P6F5T3U6MM63WBSBZATAQI3EBTQ",  // truncated
	}
	for _, secret := range invalid {
		_, err := FromSecret(secret)
		assert.ErrorIs(t, err, ErrInvalidSecret, "secret %q", secret)
	}
}

func TestIsValidPublicKey(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	require.NoError(t, err)

	assert.True(t, IsValidPublicKey(kp.Address()))
	assert.False(t, IsValidPublicKey(kp.Seed()))
	assert.False(t, IsValidPublicKey(""))
	assert.False(t, IsValidPublicKey("CD4L4MPVSJ3RLAUYQ3ID2M75VWVVMDFBTESJIY4UULFFN33X2KNRTJXY"))
}
