package activeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/models"
)

func TestSet(t *testing.T) {
	t.Run("Insert keeps ascending order", func(t *testing.T) {
		s := New(10)
		for _, id := range []models.CampaignID{5, 1, 3} {
			require.NoError(t, s.Insert(id))
		}
		assert.Equal(t, []models.CampaignID{1, 3, 5}, s.IDs())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, 10, s.Cap())
	})

	t.Run("Insert at capacity fails", func(t *testing.T) {
		s := New(2)
		require.NoError(t, s.Insert(1))
		require.NoError(t, s.Insert(2))
		assert.True(t, s.Full())
		assert.ErrorIs(t, s.Insert(3), ErrFull)
		assert.Equal(t, []models.CampaignID{1, 2}, s.IDs())
	})

	t.Run("Duplicate insert is a no-op even when full", func(t *testing.T) {
		s := New(1)
		require.NoError(t, s.Insert(7))
		assert.NoError(t, s.Insert(7))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Remove", func(t *testing.T) {
		s := New(3)
		require.NoError(t, s.Insert(1))
		require.NoError(t, s.Insert(2))
		assert.True(t, s.Remove(1))
		assert.False(t, s.Remove(1))
		assert.False(t, s.Contains(1))
		assert.True(t, s.Contains(2))
	})

	t.Run("IDs returns a copy", func(t *testing.T) {
		s := New(3)
		require.NoError(t, s.Insert(1))
		ids := s.IDs()
		ids[0] = 99
		assert.True(t, s.Contains(1))
	})

	t.Run("FromIDs sorts and dedupes", func(t *testing.T) {
		s := FromIDs(2, []models.CampaignID{4, 2, 4, 9})
		assert.Equal(t, []models.CampaignID{2, 4, 9}, s.IDs())
		assert.True(t, s.Full())
		assert.True(t, s.Remove(9))
		assert.True(t, s.Full())
		assert.True(t, s.Remove(4))
		assert.NoError(t, s.Insert(1))
	})
}
