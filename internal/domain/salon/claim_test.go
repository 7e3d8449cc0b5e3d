package salon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
)

func TestClaim(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending lead converts to subscribed", func(t *testing.T) {
		s := &models.Salon{ContactStatus: string(StatusNotContacted)}

		wasPending, err := Claim(s, 7, now)
		require.NoError(t, err)

		assert.True(t, wasPending)
		assert.True(t, s.Claimed)
		require.NotNil(t, s.OwnerID)
		assert.Equal(t, uint(7), *s.OwnerID)
		require.NotNil(t, s.ClaimedAt)
		assert.Equal(t, now, *s.ClaimedAt)
		assert.Equal(t, string(StatusSubscribed), s.ContactStatus)
	})

	t.Run("contacted lead keeps its status", func(t *testing.T) {
		s := &models.Salon{ContactStatus: string(StatusContacted)}

		wasPending, err := Claim(s, 7, now)
		require.NoError(t, err)

		assert.False(t, wasPending)
		assert.Equal(t, string(StatusContacted), s.ContactStatus)
	})

	t.Run("already claimed is rejected", func(t *testing.T) {
		owner := uint(3)
		s := &models.Salon{Claimed: true, OwnerID: &owner}

		_, err := Claim(s, 7, now)
		assert.True(t, httperr.IsBusiness(err, "already_claimed"))
	})

	t.Run("owner without claimed flag still counts as claimed", func(t *testing.T) {
		owner := uint(3)
		s := &models.Salon{OwnerID: &owner}

		_, err := Claim(s, 7, now)
		assert.True(t, httperr.IsBusiness(err, "already_claimed"))
	})
}
