package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeVaultStatus(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		holding   float64
		threshold float64
		lastSync  *time.Time
		want      VaultStatus
	}{
		{"never synced is out of sync", 5000, 100, nil, VaultStatusOutOfSync},
		{"never synced outranks low stock", 50, 100, nil, VaultStatusOutOfSync},
		{"holding above threshold", 5000, 100, &now, VaultStatusHealthy},
		{"holding below threshold", 50, 100, &now, VaultStatusLowStock},
		{"holding exactly at threshold", 100, 100, &now, VaultStatusLowStock},
		{"zero holding", 0, 100, &now, VaultStatusLowStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeVaultStatus(tt.holding, tt.threshold, tt.lastSync))
		})
	}
}

func TestVault_Recompute(t *testing.T) {
	v := &Vault{GoldHoldingGrams: 5000, ThresholdGrams: 100}
	v.Recompute()
	assert.Equal(t, VaultStatusOutOfSync, v.Status)

	now := time.Now().UTC()
	v.LastSync = &now
	v.Recompute()
	assert.Equal(t, VaultStatusHealthy, v.Status)

	v.GoldHoldingGrams = 80
	v.Recompute()
	assert.Equal(t, VaultStatusLowStock, v.Status)
}
