package readiness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
	"github.com/chaincanvas/chaincanvas/internal/catalog"
	"github.com/chaincanvas/chaincanvas/internal/connect"
)

func testSetup(t *testing.T) (*catalog.Registry, *canvas.Store) {
	t.Helper()
	r, err := catalog.NewBuiltinRegistry()
	require.NoError(t, err)
	s := canvas.NewStore(r, canvas.WithPolicy(connect.Policy(r.Lookup)))
	return r, s
}

func TestCanExecute(t *testing.T) {
	t.Parallel()

	t.Run("EmptyGraphIsNotReady", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		require.False(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup))
	})

	t.Run("UnmetRequiredInputBlocks", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		_, err := s.AddNode("single_address", canvas.Position{})
		require.NoError(t, err)
		cluster, err := s.AddNode("cluster_info", canvas.Position{})
		require.NoError(t, err)

		require.False(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup),
			"cluster_info.address is required and unconnected")

		violations := Check(s.Nodes(), s.Edges(), r.Lookup)
		require.Equal(t, []Violation{{NodeID: cluster.ID, PinID: "address"}}, violations,
			"the optional credentials input is not a violation")
	})

	t.Run("ConnectedRequiredInputSatisfies", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		src, err := s.AddNode("single_address", canvas.Position{})
		require.NoError(t, err)
		cluster, err := s.AddNode("cluster_info", canvas.Position{})
		require.NoError(t, err)

		_, ok := s.AddEdge(src.ID, "address", cluster.ID, "address")
		require.True(t, ok)

		require.True(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup))
		require.Empty(t, Check(s.Nodes(), s.Edges(), r.Lookup))
	})

	t.Run("RemovingSourceRevertsReadiness", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		src, err := s.AddNode("single_address", canvas.Position{})
		require.NoError(t, err)
		cluster, err := s.AddNode("cluster_info", canvas.Position{})
		require.NoError(t, err)
		_, ok := s.AddEdge(src.ID, "address", cluster.ID, "address")
		require.True(t, ok)
		require.True(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup))

		require.NoError(t, s.RemoveNode(src.ID))
		require.Empty(t, s.Edges(), "cascade removed the connecting edge")
		require.False(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup))
	})

	t.Run("UnresolvableNodeIsSkipped", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		_, err := s.AddNode("single_address", canvas.Position{})
		require.NoError(t, err)

		stale := &canvas.Node{ID: "stale-1", Type: "retired_type"}
		nodes := append(s.Nodes(), stale)

		require.True(t, CanExecute(nodes, s.Edges(), r.Lookup),
			"nodes whose type vanished mid-refresh are tolerated")
		require.Empty(t, Check(nodes, s.Edges(), r.Lookup))
	})

	t.Run("MultipleViolationsAllCollected", func(t *testing.T) {
		t.Parallel()
		r, s := testSetup(t)
		cluster, err := s.AddNode("cluster_info", canvas.Position{})
		require.NoError(t, err)
		tx, err := s.AddNode("transaction_info", canvas.Position{})
		require.NoError(t, err)

		violations := Check(s.Nodes(), s.Edges(), r.Lookup)
		require.ElementsMatch(t, []Violation{
			{NodeID: cluster.ID, PinID: "address"},
			{NodeID: tx.ID, PinID: "transaction"},
		}, violations)
		require.False(t, CanExecute(s.Nodes(), s.Edges(), r.Lookup))
	})
}
