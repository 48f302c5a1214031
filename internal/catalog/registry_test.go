package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuiltinDefinitions(t *testing.T) {
	t.Parallel()

	defs, err := BuiltinDefinitions()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	byType := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byType[d.Type] = d
	}

	single, ok := byType["single_address"]
	require.True(t, ok, "built-in catalog must define single_address")
	require.Equal(t, CategoryInput, single.Category)
	require.Empty(t, single.Inputs)
	require.Len(t, single.Outputs, 2)

	addr, ok := single.Output("address")
	require.True(t, ok)
	require.Equal(t, TypeAddress, addr.Type)
	chain, ok := single.Output("blockchain")
	require.True(t, ok)
	require.Equal(t, TypeString, chain.Type)

	cluster, ok := byType["cluster_info"]
	require.True(t, ok, "built-in catalog must define cluster_info")
	require.Equal(t, CategoryQuery, cluster.Category)
	creds, ok := cluster.Input("credentials")
	require.True(t, ok)
	require.False(t, creds.Required)
	in, ok := cluster.Input("address")
	require.True(t, ok)
	require.True(t, in.Required)
	require.Equal(t, TypeAddress, in.Type)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	static := []Definition{
		{Type: "single_address", Label: "Single Address", Category: CategoryInput},
	}

	t.Run("LookupHitAndMiss", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(static)

		def, ok := r.Lookup("single_address")
		require.True(t, ok)
		require.Equal(t, "Single Address", def.Label)

		_, ok = r.Lookup("no_such_type")
		require.False(t, ok)

		_, err := r.Get("no_such_type")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("StaticWinsOnCollision", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(static)
		r.Replace([]Definition{
			{Type: "single_address", Label: "Provider Shadow", Category: CategoryQuery},
			{Type: "provider_lookup", Label: "Provider Lookup", Category: CategoryQuery},
		})

		def, ok := r.Lookup("single_address")
		require.True(t, ok)
		require.Equal(t, "Single Address", def.Label, "static catalog takes precedence")

		added, ok := r.Lookup("provider_lookup")
		require.True(t, ok)
		require.Equal(t, "Provider Lookup", added.Label)
		require.Equal(t, 2, r.Len())
	})

	t.Run("ReplaceDropsPreviousProviderEntries", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry(static)
		r.Replace([]Definition{{Type: "old_provider", Label: "Old", Category: CategoryQuery}})
		r.Replace([]Definition{{Type: "new_provider", Label: "New", Category: CategoryQuery}})

		_, ok := r.Lookup("old_provider")
		require.False(t, ok, "refresh replaces the whole merged table")
		_, ok = r.Lookup("new_provider")
		require.True(t, ok)
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	provided := []ProviderDefinition{
		{
			Type:     "cluster_counterparties",
			Name:     "Cluster Counterparties",
			Category: "query",
			Provider: "chainscope",
			Inputs:   []Pin{{ID: "address", Label: "Address", Type: TypeAddress, Required: true}},
			Outputs:  []Pin{{ID: "result", Label: "Result", Type: TypeData}},
		},
		{Type: "weird_category", Category: "telemetry"},
		{Type: "", Category: "query"},
		{Type: "unnamed", Category: "output"},
	}

	defs := Normalize(provided)
	require.Len(t, defs, 3, "entries with an empty type id are dropped")

	require.Equal(t, "Cluster Counterparties", defs[0].Label)
	require.Equal(t, CategoryQuery, defs[0].Category)
	require.Equal(t, "chainscope", defs[0].Provider)

	require.Equal(t, CategoryQuery, defs[1].Category, "unrecognized category falls back to query")
	require.Equal(t, CategoryOutput, defs[2].Category)
	require.Equal(t, "unnamed", defs[2].Label, "missing name falls back to the type id")
}

func TestDirSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	one := `{"type": "prov_one", "category": "query", "provider": "p"}`
	many := `[{"type": "prov_two", "category": "query", "provider": "p"},
	          {"type": "prov_three", "category": "input", "provider": "p"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.json"), []byte(one), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "many.json"), []byte(many), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("nope"), 0o600))

	src := &DirSource{Dir: dir}
	defs, err := src.Definitions(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 3)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewRegistry([]Definition{{Type: "static_one", Label: "Static", Category: CategoryInput}})
	src := &DirSource{Dir: dir}

	require.NoError(t, Refresh(context.Background(), r, src))
	require.Equal(t, 1, r.Len())

	def := `{"type": "fetched", "category": "query", "provider": "p"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.json"), []byte(def), 0o600))
	require.NoError(t, Refresh(context.Background(), r, src))

	fetched, ok := r.Lookup("fetched")
	require.True(t, ok)
	require.Equal(t, CategoryQuery, fetched.Category)
}

func TestWatcherRefreshesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewRegistry(nil)
	src := &DirSource{Dir: dir}

	w, err := NewWatcher(dir, r, src, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	w.Start(ctx)

	def := `{"type": "watched", "category": "query", "provider": "p"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.json"), []byte(def), 0o600))

	require.Eventually(t, func() bool {
		_, ok := r.Lookup("watched")
		return ok
	}, 5*time.Second, 50*time.Millisecond, "registry should refresh after the definition file appears")
}
