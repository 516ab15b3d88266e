package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "OTP %q contains non-digit", otp)
		}
		seen[otp] = true
	}
	// 50 draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestOTPExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, otpExpired(now.Add(time.Minute), now))
	assert.True(t, otpExpired(now.Add(-time.Minute), now))
	assert.False(t, otpExpired(now, now), "expiry instant itself is still valid")
}
