package client

import (
	"path/filepath"
	"testing"

	"github.com/o6b7/travelbond/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initConfig(t *testing.T) {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	httpClient = nil
}

func TestGetClient_UsesConfiguredBaseURL(t *testing.T) {
	initConfig(t)
	config.Set("api.base_url", "http://api.example.test")

	c := GetClient()
	require.NotNil(t, c)
	assert.Equal(t, "http://api.example.test", c.BaseURL)
	assert.Same(t, c, GetClient())
}

func TestInit_AttachesSavedToken(t *testing.T) {
	initConfig(t)
	config.Set("auth.token", "saved-token")

	Init()
	assert.Equal(t, "saved-token", GetClient().Token)
}

func TestClearAuthToken(t *testing.T) {
	initConfig(t)

	SetAuthToken("abc")
	assert.Equal(t, "abc", GetClient().Token)

	ClearAuthToken()
	assert.Empty(t, GetClient().Token)
}
