package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/config"
	"github.com/MrJamesThe3rd/garage/internal/database"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 7, cfg.Billing.DueDays)
	assert.Equal(t, 5, cfg.Reports.LowStockThreshold)
	assert.Equal(t, "200", cfg.Reports.BilledThreshold.String())
	assert.Equal(t, 3, cfg.Reports.TopClients)
	assert.Equal(t, time.Duration(0), cfg.Reports.CacheTTL)
	assert.True(t, cfg.DB.Migrate)
	assert.False(t, cfg.DB.Seed)
	assert.Equal(t, database.DefaultPool, cfg.Pool())
	assert.Equal(t, "postgres://postgres:@localhost:5432/garage?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BILLING_DUE_DAYS", "30")
	t.Setenv("REPORT_BILLED_THRESHOLD", "150.50")
	t.Setenv("REPORT_CACHE_TTL", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 30, cfg.Billing.DueDays)
	assert.Equal(t, "150.5", cfg.Reports.BilledThreshold.String())
	assert.Equal(t, 45*time.Second, cfg.Reports.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, database.Pool{MaxOpen: 40, MaxIdle: 10, MaxLifetime: time.Hour}, cfg.Pool())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	type testCase struct {
		name  string
		key   string
		value string
	}

	tests := []testCase{
		{name: "NegativeDueDays", key: "BILLING_DUE_DAYS", value: "-1"},
		{name: "NegativeLowStockThreshold", key: "REPORT_LOW_STOCK_THRESHOLD", value: "-3"},
		{name: "NegativeBilledThreshold", key: "REPORT_BILLED_THRESHOLD", value: "-0.01"},
		{name: "ZeroTopClients", key: "REPORT_TOP_CLIENTS", value: "0"},
		{name: "NegativeTopClients", key: "REPORT_TOP_CLIENTS", value: "-2"},
		{name: "ZeroMaxOpenConns", key: "DB_MAX_OPEN_CONNS", value: "0"},
		{name: "IdleAboveOpen", key: "DB_MAX_IDLE_CONNS", value: "26"},
		{name: "NegativeIdle", key: "DB_MAX_IDLE_CONNS", value: "-1"},
		{name: "NegativeLifetime", key: "DB_CONN_MAX_LIFETIME", value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_AcceptsZeroBilledThreshold(t *testing.T) {
	t.Setenv("REPORT_BILLED_THRESHOLD", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Reports.BilledThreshold.IsZero())
}
