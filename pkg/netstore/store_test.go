package netstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/netstore"
	"github.com/dd0wney/bionet/pkg/netstore/memory"
)

func buildNet(t *testing.T) *bionet.BioNet {
	t.Helper()
	net := bionet.New("stored")
	a, err := net.CreateNode("A")
	require.NoError(t, err)
	b, err := net.CreateNode("B")
	require.NoError(t, err)
	_, err = net.CreateEdge(a.ID, b.ID, bionet.SignPair(bionet.None, bionet.Positive))
	require.NoError(t, err)
	require.NoError(t, net.AddParameter("k1", 0.05))
	return net
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"immune.json", true},
		{"runs/2024/immune.yaml", true},
		{"", false},
		{"   ", false},
		{"/etc/passwd", false},
		{"../escape.json", false},
		{"a/../../b", false},
		{"a..b.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := netstore.CleanKey(tt.key)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, netstore.ErrInvalidKey)
			}
		})
	}
}

func TestSaveLoadNet(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	net := buildNet(t)

	for _, format := range []bionet.Format{bionet.FormatJSON, bionet.FormatYAML, bionet.FormatSnappyJSON} {
		t.Run(format.String(), func(t *testing.T) {
			key := "nets/stored." + format.String()
			require.NoError(t, netstore.SaveNet(ctx, store, key, net, format))

			loaded, err := netstore.LoadNet(ctx, store, key, format)
			require.NoError(t, err)
			assert.Equal(t, net.Name(), loaded.Name())
			assert.Equal(t, net.Nodes(), loaded.Nodes())
			assert.Equal(t, net.Edges(), loaded.Edges())
			assert.Equal(t, net.Parameters(), loaded.Parameters())
		})
	}

	keys, err := store.List(ctx, "nets/")
	require.NoError(t, err)
	assert.Equal(t, []string{"nets/stored.json", "nets/stored.snappy", "nets/stored.yaml"}, keys)
}

func TestLoadNet_Errors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := netstore.LoadNet(ctx, store, "absent.json", bionet.FormatJSON)
	assert.ErrorIs(t, err, netstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "junk.json", []byte("not a network")))
	_, err = netstore.LoadNet(ctx, store, "junk.json", bionet.FormatJSON)
	assert.ErrorIs(t, err, bionet.ErrMalformed)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	assert.Equal(t, netstore.DriverMemory, store.Driver())

	data := []byte("v1")
	require.NoError(t, store.Put(ctx, "a", data))
	data[0] = 'X'
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, store.Put(ctx, "a", []byte("v2")))
	got, _ = store.Get(ctx, "a")
	assert.Equal(t, "v2", string(got))

	ok, err := store.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "a"))
	assert.ErrorIs(t, store.Delete(ctx, "a"), netstore.ErrNotFound)
	assert.ErrorIs(t, store.Put(ctx, "../a", nil), netstore.ErrInvalidKey)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Put(cancelled, "b", nil), context.Canceled)
}
