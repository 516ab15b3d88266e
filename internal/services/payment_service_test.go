package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmilan/backend/internal/models"
)

func TestPaymentFlagEffects(t *testing.T) {
	t.Run("verification flips both flags on", func(t *testing.T) {
		userFlag, profileFlag := paymentFlagEffects(models.PaymentStatusVerified)
		require.NotNil(t, userFlag)
		require.NotNil(t, profileFlag)
		assert.True(t, *userFlag)
		assert.True(t, *profileFlag)
	})

	t.Run("rejection clears the user flag only", func(t *testing.T) {
		userFlag, profileFlag := paymentFlagEffects(models.PaymentStatusRejected)
		require.NotNil(t, userFlag)
		assert.False(t, *userFlag)
		assert.Nil(t, profileFlag, "profile flag stays untouched on rejection")
	})

	t.Run("pending touches nothing", func(t *testing.T) {
		userFlag, profileFlag := paymentFlagEffects(models.PaymentStatusPending)
		assert.Nil(t, userFlag)
		assert.Nil(t, profileFlag)
	})
}
