package payment

import (
	"context"
	"testing"

	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSimulatorDeterministicUnderSeed(t *testing.T) {
	amount := decimal.NewFromInt(118)

	a := NewSimulator(42)
	b := NewSimulator(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Charge(context.Background(), amount), b.Charge(context.Background(), amount))
	}
}

func TestSimulatorOutcomes(t *testing.T) {
	sim := NewSimulator(1)
	amount := decimal.NewFromInt(118)

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		status := sim.Charge(context.Background(), amount)
		switch status {
		case models.StatusSuccess, models.StatusDeclined, models.StatusError:
			counts[status]++
		default:
			t.Fatalf("unexpected status %q", status)
		}
	}

	assert.Greater(t, counts[models.StatusSuccess], counts[models.StatusDeclined], "success should dominate")
	assert.Greater(t, counts[models.StatusSuccess], 500)
}
