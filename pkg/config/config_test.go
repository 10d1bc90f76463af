package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bionet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, logging.InfoLevel, cfg.Level())
	assert.Equal(t, bionet.FormatJSON, cfg.EncodingFormat())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
format: yaml
duplicate_names: reuse
store:
  driver: s3
  s3:
    bucket: networks
    region: eu-west-1
    endpoint: http://localhost:9000
    path_style: true
graphql:
  addr: ":9090"
  max_depth: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.Equal(t, bionet.FormatYAML, cfg.EncodingFormat())
	assert.Equal(t, "s3", cfg.Store.Driver)
	assert.Equal(t, S3Config{Bucket: "networks", Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true}, cfg.Store.S3)
	assert.Equal(t, GraphQLConfig{Addr: ":9090", MaxDepth: 4}, cfg.GraphQL)
	assert.Equal(t, DefaultDir, cfg.Store.Dir, "unset fields keep defaults")

	net := bionet.New("cfg", cfg.NetOptions()...)
	first, err := net.CreateNode("A")
	require.NoError(t, err)
	again, err := net.CreateNode("A")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: fs\n  dir: /from/file\n")
	t.Setenv("BIONET_LOG_LEVEL", "ERROR")
	t.Setenv("BIONET_FORMAT", "snappy")
	t.Setenv("BIONET_STORE_DIR", "/from/env")
	t.Setenv("BIONET_STORE_PATH", "/from/env.db")
	t.Setenv("BIONET_S3_PATH_STYLE", "true")
	t.Setenv("BIONET_GRAPHQL_MAX_DEPTH", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, logging.ErrorLevel, cfg.Level())
	assert.Equal(t, bionet.FormatSnappyJSON, cfg.EncodingFormat())
	assert.Equal(t, "/from/env", cfg.Store.Dir)
	assert.Equal(t, "/from/env.db", cfg.Store.Path)
	assert.True(t, cfg.Store.S3.PathStyle)
	assert.Equal(t, 3, cfg.GraphQL.MaxDepth)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		want    []string
	}{
		{
			name:    "unknown field",
			content: "colour: blue\n",
			want:    []string{"failed to parse config"},
		},
		{
			name:    "every invalid field reported",
			content: "log_level: loud\nformat: xml\nstore:\n  driver: ftp\n",
			want:    []string{"config.log_level", "config.format", "config.store.driver"},
		},
		{
			name:    "s3 without bucket",
			content: "store:\n  driver: s3\n",
			want:    []string{"config.store.s3.bucket"},
		},
		{
			name:    "sqlite without path",
			content: "store:\n  driver: sqlite\n  path: \"\"\n",
			want:    []string{"config.store.path"},
		},
		{
			name:    "bad depth",
			content: "graphql:\n  max_depth: 0\n",
			want:    []string{"config.graphql.max_depth"},
		},
		{
			name: "bad env bool",
			env:  map[string]string{"BIONET_S3_PATH_STYLE": "sometimes"},
			want: []string{"BIONET_S3_PATH_STYLE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
