package payment

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/shopspring/decimal"
)

// Gateway charges an amount and reports the outcome as an order status.
// There is no real processor behind the current implementation; a
// production integration would put one behind this interface.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal) string
}

// Simulator fakes a payment processor with a weighted random outcome:
// mostly success, occasionally declined, rarely a processor error.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(seed uint64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *Simulator) Charge(ctx context.Context, amount decimal.Decimal) string {
	s.mu.Lock()
	n := s.rng.IntN(100)
	s.mu.Unlock()

	switch {
	case n < 80:
		return models.StatusSuccess
	case n < 95:
		return models.StatusDeclined
	default:
		return models.StatusError
	}
}
