package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfig(t *testing.T) {
	c := NewMapConfig(map[string]string{
		KeyPort:       "8080",
		KeySessionTTL: "2h",
		KeyTxRetry:    "abc",
		"FLAG":        "Yes",
	})

	assert.Equal(t, "8080", c.GetKey(KeyPort))
	assert.Equal(t, 8080, c.GetIntKey(KeyPort))
	assert.Equal(t, 0, c.GetIntKey(KeyTxRetry))
	assert.Equal(t, 5, c.GetIntKeyWithDefault(KeyTxRetry, 5))
	assert.Equal(t, "sqlite", c.GetKeyWithDefault(KeyDBDriver, "sqlite"))
	assert.True(t, c.GetBoolKey("FLAG"))
	assert.False(t, c.GetBoolKey("MISSING"))
	assert.Equal(t, 2*time.Hour, c.GetDurationKeyWithDefault(KeySessionTTL, time.Minute))

	c.Set(KeySessionTTL, "30")
	assert.Equal(t, 30*time.Second, c.GetDurationKeyWithDefault(KeySessionTTL, time.Minute))

	c.Set(KeySessionTTL, "soon")
	assert.Equal(t, time.Minute, c.GetDurationKeyWithDefault(KeySessionTTL, time.Minute))

	assert.Error(t, c.LoadFromPath("/tmp/x.env"))
}

func TestPackageLevelUsesSetConfig(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)

	SetConfig(NewMapConfig(map[string]string{KeyProofsDir: "/data/proofs"}))
	assert.Equal(t, "/data/proofs", GetKey(KeyProofsDir))
}

func TestDotenvConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club.env")
	require.NoError(t, os.WriteFile(path, []byte("CLUB_TEST_DOTENV_KEY=from-file\n"), 0600))
	defer os.Unsetenv("CLUB_TEST_DOTENV_KEY")

	c := NewDotenvConfig("")
	require.NoError(t, c.Load())
	require.NoError(t, c.LoadFromPath(path))
	assert.Equal(t, "from-file", c.GetKey("CLUB_TEST_DOTENV_KEY"))
}
