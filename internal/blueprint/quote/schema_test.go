package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSnapshot(t *testing.T) {
	t.Run("Empty snapshot is valid", func(t *testing.T) {
		require.NoError(t, ValidateSnapshot(Snapshot{}))
	})

	t.Run("Collections output is valid", func(t *testing.T) {
		c := NewCollections()
		c.Append(wall(100), wall(25))
		require.NoError(t, ValidateSnapshot(c.Snapshot()))
	})

	t.Run("Negative price is rejected", func(t *testing.T) {
		c := NewCollections()
		c.Append(wall(-1))
		require.Error(t, ValidateSnapshot(c.Snapshot()))
	})

	t.Run("Malformed documents are rejected", func(t *testing.T) {
		require.Error(t, ValidateJSON([]byte(`{"objects":[{"id":"nope"}],"quote":[],"total":0}`)))
		require.Error(t, ValidateJSON([]byte(`{"objects":[],"quote":[]}`)))
		require.Error(t, ValidateJSON([]byte(`not json`)))
	})
}
