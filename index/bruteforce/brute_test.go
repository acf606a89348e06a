package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_RanksByCosineDistance(t *testing.T) {
	idx := &Index{}
	require.NoError(t, idx.Build(
		[]string{"east", "north", "diag"},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
	))

	ids, dists, err := idx.Query([]float32{2, 0}, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"east", "diag", "north"}, ids)
	assert.InDelta(t, 0, dists[0], 1e-6)
	assert.InDelta(t, 1, dists[2], 1e-6)
}

func TestQuery_SkipsZeroMagnitudeEntries(t *testing.T) {
	idx := &Index{}
	require.NoError(t, idx.Build(
		[]string{"zero", "unit"},
		[][]float32{{0, 0}, {1, 0}},
	))

	ids, _, err := idx.Query([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"unit"}, ids)
}

func TestQuery_NonPositiveK(t *testing.T) {
	idx := &Index{}
	require.NoError(t, idx.Build(
		[]string{"a", "b"},
		[][]float32{{1, 0}, {0, 1}},
	))

	for _, k := range []int{0, -1} {
		ids, dists, err := idx.Query([]float32{1, 0}, k)
		require.NoError(t, err, "k=%d", k)
		assert.Empty(t, ids, "k=%d", k)
		assert.Empty(t, dists, "k=%d", k)
	}
}

func TestQuery_DimMismatch(t *testing.T) {
	idx := &Index{}
	require.NoError(t, idx.Build([]string{"a"}, [][]float32{{1, 0, 0}}))

	_, _, err := idx.Query([]float32{1, 0}, 1)
	assert.Error(t, err)
}

func TestBuild_LengthMismatch(t *testing.T) {
	idx := &Index{}
	assert.Error(t, idx.Build([]string{"a", "b"}, [][]float32{{1}}))
}

func TestMarshalRoundTrip(t *testing.T) {
	idx := &Index{}
	require.NoError(t, idx.Build(
		[]string{"a", "b", "c"},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0.5, 0.5, 0}},
	))

	data, err := idx.MarshalBinary()
	require.NoError(t, err)

	restored := &Index{}
	require.NoError(t, restored.UnmarshalBinary(data))

	wantIDs, wantDists, err := idx.Query([]float32{1, 0.1, 0}, 3)
	require.NoError(t, err)
	gotIDs, gotDists, err := restored.Query([]float32{1, 0.1, 0}, 3)
	require.NoError(t, err)

	assert.Equal(t, wantIDs, gotIDs)
	assert.Equal(t, wantDists, gotDists)
}

func TestUnmarshal_Truncated(t *testing.T) {
	idx := &Index{}
	assert.Error(t, idx.UnmarshalBinary([]byte{1, 2, 3}))
}
