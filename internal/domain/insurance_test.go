package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInsurance_ExpiryStatusAt(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	const window = 30

	t.Run("Pending is not monitor eligible", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusPending, ExpiryDate: now.AddDate(0, 0, -10)}
		next, changed := ins.ExpiryStatusAt(now, window)
		assert.False(t, changed)
		assert.Equal(t, InsuranceStatusPending, next)
	})

	t.Run("Rejected is not monitor eligible", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusRejected, ExpiryDate: now.AddDate(0, 0, -10)}
		_, changed := ins.ExpiryStatusAt(now, window)
		assert.False(t, changed)
	})

	t.Run("Verified far from expiry needs no write", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusVerified, ExpiryDate: now.AddDate(0, 6, 0)}
		next, changed := ins.ExpiryStatusAt(now, window)
		assert.False(t, changed)
		assert.Equal(t, InsuranceStatusVerified, next)
	})

	t.Run("Verified inside warning window becomes expiring soon", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusVerified, ExpiryDate: now.AddDate(0, 0, 14)}
		next, changed := ins.ExpiryStatusAt(now, window)
		assert.True(t, changed)
		assert.Equal(t, InsuranceStatusExpiringSoon, next)
	})

	t.Run("Expiring soon past expiry becomes expired", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusExpiringSoon, ExpiryDate: now.AddDate(0, 0, -1)}
		next, changed := ins.ExpiryStatusAt(now, window)
		assert.True(t, changed)
		assert.Equal(t, InsuranceStatusExpired, next)
	})

	t.Run("Expiring soon still in window needs no write", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusExpiringSoon, ExpiryDate: now.AddDate(0, 0, 7)}
		_, changed := ins.ExpiryStatusAt(now, window)
		assert.False(t, changed)
	})

	t.Run("Expiry exactly now is expired", func(t *testing.T) {
		ins := &Insurance{Status: InsuranceStatusVerified, ExpiryDate: now}
		next, changed := ins.ExpiryStatusAt(now, window)
		assert.True(t, changed)
		assert.Equal(t, InsuranceStatusExpired, next)
	})
}

func TestInsurance_MonitorEligible(t *testing.T) {
	assert.True(t, (&Insurance{Status: InsuranceStatusVerified}).MonitorEligible())
	assert.True(t, (&Insurance{Status: InsuranceStatusExpiringSoon}).MonitorEligible())
	assert.False(t, (&Insurance{Status: InsuranceStatusPending}).MonitorEligible())
	assert.False(t, (&Insurance{Status: InsuranceStatusExpired}).MonitorEligible())
	assert.False(t, (&Insurance{Status: InsuranceStatusRejected}).MonitorEligible())
}
