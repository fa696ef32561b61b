package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadMissingFileReturnsDefaults(t *testing.T) {
	conf, err := Read(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
}

func TestReadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	content := "address = \":9090\"\nllm_model = \"gpt-4o\"\nworker_count = 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	conf, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", conf.Address)
	require.Equal(t, "gpt-4o", conf.LlmModel)
	require.EqualValues(t, 2, conf.WorkerCount)
	require.Equal(t, Default().UsersTable, conf.UsersTable)
}

func TestReadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("address = :::"), 0644))

	_, err := Read(path)
	require.Error(t, err)
}
