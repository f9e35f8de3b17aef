package partner_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestorePartner(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should restore partner with all fields", func(t *testing.T) {
		p, err := partner.RestorePartner(id, "Pat Doe", "pat@example.com", true, true, false)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "Pat Doe", p.Name())
		assert.Equal(t, "pat@example.com", p.Email())
		assert.True(t, p.IsActive())
		assert.True(t, p.IsAvailable())
		assert.False(t, p.IsOnline())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := partner.RestorePartner(invalidID, "Pat Doe", "pat@example.com", true, true, true)

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		p, err := partner.RestorePartner(id, "", "pat@example.com", true, true, true)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("should allow empty email", func(t *testing.T) {
		p, err := partner.RestorePartner(id, "Pat Doe", "", true, true, true)

		require.NoError(t, err)
		assert.Empty(t, p.Email())
	})
}

func TestPartnerValidate(t *testing.T) {
	t.Run("should reject partner not created via constructor", func(t *testing.T) {
		var p partner.Partner

		err := p.Validate()

		require.ErrorIs(t, err, partner.ErrPartnerIsNotConstructed)
	})
}

func TestPartnerCanDeliver(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should deliver when active available and online", func(t *testing.T) {
		p, err := partner.RestorePartner(id, "Pat Doe", "", true, true, true)

		require.NoError(t, err)
		assert.True(t, p.CanDeliver())
	})

	t.Run("should not deliver when any flag is down", func(t *testing.T) {
		cases := []struct {
			name      string
			active    bool
			available bool
			online    bool
		}{
			{"inactive account", false, true, true},
			{"opted out", true, false, true},
			{"offline", true, true, false},
		}

		for _, tc := range cases {
			p, err := partner.RestorePartner(id, "Pat Doe", "", tc.active, tc.available, tc.online)

			require.NoError(t, err, tc.name)
			assert.False(t, p.CanDeliver(), tc.name)
		}
	})
}
