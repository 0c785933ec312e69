package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyRatio(t *testing.T) {
	tests := []struct {
		name string
		dc   float64
		ac   float64
		want float64
	}{
		{"typical charger loss", 86, 100, 0.86},
		{"rounds to two decimals", 10, 12, 0.83},
		{"zero consumption", 5, 0, 0},
		{"zero delivery", 0, 40, 0},
		{"ratio above one", 12, 10, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EfficiencyRatio(tt.dc, tt.ac), 1e-9)
		})
	}
}
