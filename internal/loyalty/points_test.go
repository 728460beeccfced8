package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPointsForAmount(t *testing.T) {
	tests := []struct {
		name   string
		total  string
		points int
	}{
		{"below threshold", "99", 0},
		{"exactly threshold", "100", 1},
		{"two and a half units", "250", 2},
		{"zero", "0", 0},
		{"just under second point", "199.99", 1},
		{"large total", "12345.67", 123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			assert.Equal(t, tt.points, PointsForAmount(total))
		})
	}
}
