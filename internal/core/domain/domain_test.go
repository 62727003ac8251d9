package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceApplyRate(t *testing.T) {
	inv := Invoice{Amount: decimal.RequireFromString("1000.00")}
	inv.ApplyRate(decimal.RequireFromString("1.0842"))

	if assert.NotNil(t, inv.ExchangeRate) && assert.NotNil(t, inv.AmountInDefaultCurrency) {
		assert.True(t, inv.ExchangeRate.Equal(decimal.RequireFromString("1.0842")))
		assert.True(t, inv.AmountInDefaultCurrency.Equal(decimal.RequireFromString("1084.20")))
	}
}

func TestConvertAmountRounding(t *testing.T) {
	tests := []struct {
		amount, rate, want string
	}{
		{"500", "1.1", "550"},
		{"750", "1.3", "975"},
		{"10.005", "1", "10.01"},
		{"33.333", "3", "100"},
	}
	for _, tt := range tests {
		got := ConvertAmount(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.rate))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s*%s = %s, want %s", tt.amount, tt.rate, got, tt.want)
	}
}

func TestRateCacheEntryIsFresh(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, RateCacheEntry{CreatedAt: now.Add(-59 * time.Minute)}.IsFresh(now))
	assert.True(t, RateCacheEntry{CreatedAt: now.Add(-RateFreshnessWindow)}.IsFresh(now))
	assert.False(t, RateCacheEntry{CreatedAt: now.Add(-61 * time.Minute)}.IsFresh(now))
}

func TestRoleSatisfies(t *testing.T) {
	assert.True(t, RoleAdmin.Satisfies(RoleMember))
	assert.True(t, RoleAdmin.Satisfies(RoleReadOnly))
	assert.True(t, RoleMember.Satisfies(RoleReadOnly))
	assert.True(t, RoleMember.Satisfies(RoleMember))
	assert.False(t, RoleReadOnly.Satisfies(RoleMember))
	assert.False(t, RoleMember.Satisfies(RoleAdmin))
	assert.False(t, UserWorkplaceRole("").Satisfies(RoleReadOnly))
}

func TestWorkplaceEffectiveDefaultCurrency(t *testing.T) {
	eur := "EUR"
	empty := ""
	assert.Equal(t, "EUR", Workplace{DefaultCurrencyCode: &eur}.EffectiveDefaultCurrency("USD"))
	assert.Equal(t, "USD", Workplace{DefaultCurrencyCode: &empty}.EffectiveDefaultCurrency("USD"))
	assert.Equal(t, "USD", Workplace{}.EffectiveDefaultCurrency("USD"))
}

func TestCurrencyHelpers(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCurrency(" eur "))
	assert.True(t, IsCurrencyCodeShape("usd"))
	assert.False(t, IsCurrencyCodeShape("US"))
	assert.False(t, IsCurrencyCodeShape("U5D"))
	assert.False(t, IsCurrencyCodeShape("INVALID"))
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Skip: 0, Limit: DefaultPageLimit}, Page{Skip: -3, Limit: 0}.Normalize())
	assert.Equal(t, Page{Skip: 5, Limit: MaxPageLimit}, Page{Skip: 5, Limit: 5000}.Normalize())
	assert.Equal(t, Page{Skip: 10, Limit: 10}, Page{Skip: 10, Limit: 10}.Normalize())
}
