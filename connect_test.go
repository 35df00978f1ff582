package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSourceNilArg(t *testing.T) {
	dst := NewAdd(1, 1)
	assert.ErrorIs(t, dst.AddSource(nil), ErrNullArg)
}

func TestAddSourceCapacityRollback(t *testing.T) {
	dst := NewAdd(1, 1)
	src1 := NewAdd(0, 1)
	src2 := NewAdd(0, 1)

	require.NoError(t, dst.AddSource(src1))

	err := dst.AddSource(src2)
	assert.ErrorIs(t, err, ErrSourceFull)
	// the half-completed registration on src2's side must be undone.
	assert.Equal(t, 0, src2.SinkCount())
	assert.Equal(t, 1, dst.SourceCount())
}

func TestAddSourceDuplicate(t *testing.T) {
	dst := NewAdd(2, 1)
	src := NewAdd(0, 1)

	require.NoError(t, dst.AddSource(src))
	assert.ErrorIs(t, dst.AddSource(src), ErrDuplicate)
}

func TestRegisterSinkFull(t *testing.T) {
	dst1 := NewAdd(1, 1)
	dst2 := NewAdd(1, 1)
	src := NewAdd(0, 1)

	require.NoError(t, dst1.AddSource(src))
	assert.ErrorIs(t, dst2.AddSource(src), ErrSinkFull)
	assert.Equal(t, 0, dst2.SourceCount())
}

func TestRemoveSourceSymmetric(t *testing.T) {
	dst := NewAdd(1, 1)
	src := NewAdd(0, 1)

	require.NoError(t, dst.AddSource(src))
	require.NoError(t, dst.RemoveSource(src))
	assert.Equal(t, 0, dst.SourceCount())
	assert.Equal(t, 0, src.SinkCount())
}

func TestRemoveSourceUnconnectedIsNoop(t *testing.T) {
	dst := NewAdd(1, 1)
	src := NewAdd(0, 1)
	assert.NoError(t, dst.RemoveSource(src))
}

func TestSourceSinkIndexedAccess(t *testing.T) {
	dst := NewAdd(1, 1)
	src := NewAdd(0, 1)
	require.NoError(t, dst.AddSource(src))

	got, err := dst.SourceAt(0)
	require.NoError(t, err)
	assert.Equal(t, Node(src), got)

	_, err = dst.SourceAt(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
