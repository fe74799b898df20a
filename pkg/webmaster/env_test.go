package webmaster_test

import (
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test, with and without the YWM_ prefix.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		for _, name := range []string{key, webmaster.EnvPrefix + "_" + key} {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetEnv(t, "API", "AUTH_SCHEME", "USER_ID", "TIMEOUT", "RETRY_MAX")
		t.Setenv("YWM_TOKEN", "env-token")

		cfg, err := webmaster.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.Token)
		assert.Equal(t, webmaster.DefaultAuthScheme, cfg.AuthScheme)
		assert.Equal(t, webmaster.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 0, cfg.RetryMax)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("YWM_TOKEN", "env-token")
		t.Setenv("YWM_API", "http://localhost:8080/v4")
		t.Setenv("YWM_USER_ID", "42")
		t.Setenv("YWM_RETRY_MAX", "3")
		t.Setenv("YWM_TIMEOUT", "5s")
		t.Setenv("YWM_AUTH_SCHEME", "Bearer")

		cfg, err := webmaster.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/v4", cfg.BaseURL)
		assert.Equal(t, int64(42), cfg.UserID)
		assert.Equal(t, 3, cfg.RetryMax)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "Bearer", cfg.AuthScheme)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("YWM_TOKEN", "")

		_, err := webmaster.ConfigFromEnv()
		require.ErrorIs(t, err, webmaster.ErrAuthentication)
		assert.Equal(t, webmaster.KindAuthentication, webmaster.KindOf(err))
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("YWM_TOKEN", "env-token")
		t.Setenv("YWM_RETRY_MAX", "many")

		_, err := webmaster.ConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RETRY_MAX")
	})
}
