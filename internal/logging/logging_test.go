package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ArowuTest/gaspay-backend/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gaspay.log")
	closer, err := Setup(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		log.SetOutput(os.Stdout)
		log.SetLevel(log.InfoLevel)
	})

	log.WithField("msisdn", "+233241234567").Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msisdn":"+233241234567"`)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
