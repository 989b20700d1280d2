package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing optional sections stay nil", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		yaml := `api:
  environment: development
  port: "8080"
  jwt_signing_key: test-key
postgres:
  host: localhost
  port: "5432"
  user: test
  password: test
  db: test
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

		conf, err := Load(path)

		require.NoError(t, err)
		require.NotNil(t, conf.API)
		assert.Equal(t, "8080", conf.API.Port)
		require.NotNil(t, conf.Postgres)
		assert.Equal(t, "localhost", conf.Postgres.Host)
		assert.Nil(t, conf.Storage)
		assert.Nil(t, conf.Redis)
		assert.Nil(t, conf.AMQP)
		assert.Nil(t, conf.Admin)
		assert.Nil(t, conf.Analytics)
	})

	t.Run("storage section parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		yaml := `api:
  port: "8080"
storage:
  receipts_dir: /var/receipts
  public_url: /files
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

		conf, err := Load(path)

		require.NoError(t, err)
		require.NotNil(t, conf.Storage)
		assert.Equal(t, "/var/receipts", conf.Storage.ReceiptsDir)
		assert.Equal(t, "/files", conf.Storage.PublicURL)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
