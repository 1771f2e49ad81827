package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olgwatch/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	conf, err := config.New(t.Context())
	require.NoError(t, err)

	assert.False(t, conf.Dev)
	assert.Contains(t, conf.PageURL, "olg-hamm.nrw.de")
	assert.Equal(t, 15*time.Minute, conf.CheckInterval)
	assert.Equal(t, "data/hashes.txt", conf.HashFile)
	assert.Equal(t, "OLG Watcher", conf.FromName)
	assert.Empty(t, conf.TelegramBotToken)
	assert.Zero(t, conf.TelegramChatID)
	assert.Empty(t, conf.BrevoAPIKey)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("CHECK_INTERVAL", "90s")
	t.Setenv("HASH_FILE", "/var/lib/olgwatch/hashes.txt")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234567890")
	t.Setenv("MAIL_TO", "a@example.com, b@example.com")

	conf, err := config.New(t.Context())
	require.NoError(t, err)

	assert.True(t, conf.Dev)
	assert.Equal(t, 90*time.Second, conf.CheckInterval)
	assert.Equal(t, "/var/lib/olgwatch/hashes.txt", conf.HashFile)
	assert.Equal(t, "123:abc", conf.TelegramBotToken)
	assert.Equal(t, int64(-1001234567890), conf.TelegramChatID)
	assert.Equal(t, "a@example.com, b@example.com", conf.MailTo)
}

func TestNew_InvalidInterval(t *testing.T) {
	t.Setenv("CHECK_INTERVAL", "soon")

	_, err := config.New(t.Context())
	assert.Error(t, err)
}
